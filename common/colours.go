package common

// ColourPurple is the embed colour for informational replies.
const ColourPurple = 0x9b59b6
