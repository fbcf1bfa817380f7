// Package log add logging utilities.
package log

import (
	"strings"
	"time"

	"wordfetch/internal/pkg/protocol"
	"wordfetch/internal/pkg/session"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SetLogger sets the default logger's level.
func SetLogger(level string) {
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = time.RFC3339
	customFormatter.FullTimestamp = true
	logrus.SetFormatter(customFormatter)
	switch strings.ToLower(level) {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.ErrorLevel)
	}
}

func RequestToFields(req protocol.Request) logrus.Fields {
	return logrus.Fields{
		"offset":    req.Offset,
		"page_size": req.PageSize,
	}
}

func ResponseToFields(resp protocol.Response) logrus.Fields {
	return logrus.Fields{
		"kind":   resp.Kind.String(),
		"tokens": len(resp.Tokens),
	}
}

func SessionToFields(id uuid.UUID, sess session.Session) logrus.Fields {
	return logrus.Fields{
		"session":  id.String(),
		"remote":   sess.RemoteAddr,
		"requests": sess.Requests,
		"invalid":  sess.Invalid,
		"finished": sess.Finished,
		"duration": time.Since(sess.Started).String(),
	}
}
