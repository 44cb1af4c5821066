package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"
)

const logMirrorScope = "fantasy-cricket/internal/platform/logging"

// noisyPaths are request logs that are not forwarded to the OTLP pipeline.
var noisyPaths = map[string]struct{}{
	"/healthz": {},
}

func newUptraceLogMirror(serviceVersion string) logging.MirrorFunc {
	otelLogger := otelglobal.Logger(logMirrorScope, otellog.WithInstrumentationVersion(serviceVersion))

	return func(ctx context.Context, level logging.Level, msg string, args ...any) {
		if skipMirroredLog(msg, args) {
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}
		severity := severityFor(level)
		if !otelLogger.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
			return
		}

		now := time.Now().UTC()
		var record otellog.Record
		record.SetTimestamp(now)
		record.SetObservedTimestamp(now)
		record.SetSeverity(severity)
		record.SetSeverityText(strings.ToUpper(level.String()))
		record.SetEventName(msg)
		record.SetBody(otellog.StringValue(msg))
		if attrs := logAttributes(args); len(attrs) > 0 {
			record.AddAttributes(attrs...)
		}
		otelLogger.Emit(ctx, record)
	}
}

func skipMirroredLog(msg string, args []any) bool {
	if msg != "http_request" {
		return false
	}
	for i := 0; i+1 < len(args); i += 2 {
		if key, _ := args[i].(string); key == "http_path" {
			path, _ := args[i+1].(string)
			_, noisy := noisyPaths[path]
			return noisy
		}
	}
	return false
}

func logAttributes(args []any) []otellog.KeyValue {
	out := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || strings.TrimSpace(key) == "" {
			key = fmt.Sprintf("arg_%d", i/2)
		}
		if i+1 >= len(args) {
			out = append(out, otellog.KeyValue{Key: key})
			break
		}
		out = append(out, otellog.KeyValue{Key: key, Value: logValue(args[i+1])})
	}
	return out
}

func logValue(v any) otellog.Value {
	switch typed := v.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(typed)
	case bool:
		return otellog.BoolValue(typed)
	case int:
		return otellog.IntValue(typed)
	case int32:
		return otellog.Int64Value(int64(typed))
	case int64:
		return otellog.Int64Value(typed)
	case float64:
		return otellog.Float64Value(typed)
	case time.Duration:
		return otellog.StringValue(typed.String())
	case time.Time:
		return otellog.StringValue(typed.UTC().Format(time.RFC3339Nano))
	case error:
		return otellog.StringValue(typed.Error())
	case fmt.Stringer:
		return otellog.StringValue(typed.String())
	default:
		return otellog.StringValue(fmt.Sprintf("%+v", typed))
	}
}

func severityFor(level logging.Level) otellog.Severity {
	switch level {
	case zapcore.DebugLevel:
		return otellog.SeverityDebug
	case zapcore.InfoLevel:
		return otellog.SeverityInfo
	case zapcore.WarnLevel:
		return otellog.SeverityWarn
	default:
		return otellog.SeverityError
	}
}
