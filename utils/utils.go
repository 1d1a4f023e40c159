package utils

import (
	"strings"

	"go.uber.org/zap"
)

func AddToLogMessage(logMessagesBuilder *strings.Builder, strToAdd string) {

	if logMessagesBuilder.Len() == logMessagesBuilder.Cap() {

		logMessagesBuilder.Grow(len(strToAdd))
	}

	logMessagesBuilder.WriteString(strToAdd)
	logMessagesBuilder.WriteString(";")
	logMessagesBuilder.WriteString("\n")
}

// FlushLogMessage writes the collected request log as a single entry
func FlushLogMessage(logger *zap.Logger, logMessagesBuilder *strings.Builder) {
	if logger == nil || logMessagesBuilder.Len() == 0 {
		return
	}
	logger.Info(strings.TrimSpace(logMessagesBuilder.String()))
}
