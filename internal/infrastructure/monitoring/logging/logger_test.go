package logging

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/molsim/pkg/errors"
)

func newTestLogger(t *testing.T) (Logger, *zaptest.Buffer) {
	t.Helper()
	buf := &zaptest.Buffer{}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), buf, zapcore.DebugLevel)
	return &zapLogger{z: zap.New(core)}, buf
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"", FormatJSON, FormatConsole} {
		l, err := NewLogger(LogConfig{Level: LevelDebug, Format: format, OutputPaths: []string{"stderr"}})
		require.NoError(t, err, "format %q", format)
		assert.NotNil(t, l)
	}
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger(LogConfig{Format: "xml"})
	assert.Error(t, err)

	_, err = NewLogger(LogConfig{Level: "verbose"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"Error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Debug("msg")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	assert.Equal(t, l, l.With(String("k", "v")))
	assert.Equal(t, l, l.Named("x"))
	assert.NoError(t, l.Sync())
}

func TestZapLogger_Levels(t *testing.T) {
	l, buf := newTestLogger(t)
	l.Debug("debug msg")
	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error msg")

	out := buf.String()
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		assert.Contains(t, out, lvl+" msg")
		assert.Contains(t, out, `"level":"`+lvl+`"`)
	}
}

func TestZapLogger_Fields(t *testing.T) {
	l, buf := newTestLogger(t)
	l.With(String("variant", "covalent")).Named("bondhunt").Info("hunt",
		Int("bonds", 3),
		Int64("pairs", 9),
		Float64("tolerance", 1.1),
		Bool("valence", false),
		Duration("elapsed", time.Millisecond),
		Any("chunks", []int{0, 1}),
	)

	out := buf.String()
	assert.Contains(t, out, `"variant":"covalent"`)
	assert.Contains(t, out, `"logger":"bondhunt"`)
	assert.Contains(t, out, `"bonds":3`)
	assert.Contains(t, out, `"pairs":9`)
	assert.Contains(t, out, `"tolerance":1.1`)
	assert.Contains(t, out, `"valence":false`)
	assert.Contains(t, out, `"chunks":[0,1]`)
}

func TestErrFields(t *testing.T) {
	l, buf := newTestLogger(t)
	l.Error("failed", ErrFields(errors.MissingProperty("coordinates"))...)

	out := buf.String()
	assert.Contains(t, out, `"error_code":"MOL_MISSING_PROPERTY"`)
	assert.Contains(t, out, `MOL_MISSING_PROPERTY`)

	assert.Len(t, ErrFields(nil), 1)
	assert.Equal(t, "<nil>", Err(nil).Value)

	f := ErrFields(stderrors.New("plain"))
	assert.Equal(t, "UNKNOWN", f[1].Value)
}

func TestLogOperationDuration(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core)

	LogOperationDuration(l, "infer", time.Now(), String("file", "water.xyz"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "operation completed", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "infer", entry.ContextMap()["operation"])
	assert.Equal(t, "water.xyz", entry.ContextMap()["file"])

	LogOperationDuration(l, "infer", time.Now().Add(-2*time.Second))
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	l, _ := newTestLogger(t)
	SetDefault(l)
	assert.Equal(t, l, Default())

	SetDefault(nil)
	assert.Equal(t, l, Default())
}
