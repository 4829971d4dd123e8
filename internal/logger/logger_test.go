package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/habyx/backend/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
		env   config.Environment
		want  zapcore.Level
	}{
		{"production info", "info", config.Production, zapcore.InfoLevel},
		{"development debug", "debug", config.Development, zapcore.DebugLevel},
		{"test warn", "warn", config.Test, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.level, tt.env)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.want))
			assert.False(t, l.Core().Enabled(tt.want-1))
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", config.Development)
	assert.Error(t, err)
}

func TestMustFallsBack(t *testing.T) {
	assert.NotNil(t, Must("loud", config.Production))
}
