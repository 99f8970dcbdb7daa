package logger

import (
	"log"
	"os"
)

// ProgressLogger logs the main steps of a run: parsing, layout, rendering.
var ProgressLogger = log.New(os.Stderr, "imu.progress: ", log.LstdFlags)

// WarningLogger emits one line per non fatal layout issue, like content
// sizing on a childless box.
var WarningLogger = log.New(os.Stderr, "imu.warning: ", log.Lmsgprefix)
