package util

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogCast | LogPool | LogSpatial | LogArena

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelDebug
	LogLevelInfo
)

type LogCategory int

const (
	LogCast LogCategory = 1 << iota
	LogPool
	LogSpatial
	LogArena
)

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	println(txt)
}

func LogCastInfo(txt string) {
	log(LogCast, LogLevelInfo, txt)
}

func LogCastDebug(txt string) {
	log(LogCast, LogLevelDebug, txt)
}

func LogCastWarning(txt string) {
	log(LogCast, LogLevelWarning, txt)
}

func LogCastError(txt string) {
	log(LogCast, LogLevelError, txt)
}

func LogPoolInfo(txt string) {
	log(LogPool, LogLevelInfo, txt)
}

func LogPoolDebug(txt string) {
	log(LogPool, LogLevelDebug, txt)
}

func LogPoolError(txt string) {
	log(LogPool, LogLevelError, txt)
}

func LogSpatialDebug(txt string) {
	log(LogSpatial, LogLevelDebug, txt)
}

func LogSpatialError(txt string) {
	log(LogSpatial, LogLevelError, txt)
}

func LogArenaInfo(txt string) {
	log(LogArena, LogLevelInfo, txt)
}

func LogArenaError(txt string) {
	log(LogArena, LogLevelError, txt)
}
