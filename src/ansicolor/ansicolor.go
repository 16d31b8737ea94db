package ansicolor

const (
	Reset = "\x1b[0m"
	Bold  = "\x1b[1m"

	Black   = "\x1b[30m"
	Red     = "\x1b[31m"
	Green   = "\x1b[32m"
	Yellow  = "\x1b[33m"
	Blue    = "\x1b[34m"
	Magenta = "\x1b[35m"
	Cyan    = "\x1b[36m"
	White   = "\x1b[37m"
	Gray    = "\x1b[90m"

	BgRed    = "\x1b[41m"
	BgGreen  = "\x1b[42m"
	BgYellow = "\x1b[43m"
	BgBlue   = "\x1b[44m"
)
