package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log dipakai di seluruh aplikasi. Default-nya logger standar agar
// package lain (dan test) tetap aman sebelum BootstrapLogger dipanggil.
var Log = logrus.New()

func BootstrapLogger(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	Log = &logrus.Logger{
		Out:   os.Stdout,
		Hooks: make(logrus.LevelHooks),
		Formatter: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		},
		Level:    lvl,
		ExitFunc: os.Exit,
	}
	Log.SetReportCaller(lvl >= logrus.DebugLevel)

	if err != nil {
		Log.Warnf("LOG_LEVEL %q tidak dikenal, memakai info", level)
	}
}
