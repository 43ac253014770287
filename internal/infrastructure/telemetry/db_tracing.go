package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shopadmin/backend/internal/infrastructure/config"
)

// RegisterDBTracing attaches the otelgorm plugin to the GORM instance so
// every query becomes a child span of the request trace. Query variables
// are always stripped from the recorded SQL. A post-operation callback
// annotates spans with row counts, table names, and errors. No-op when
// database tracing is disabled.
func RegisterDBTracing(db *gorm.DB, cfg *config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName("postgresql"),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}

	if err := registerSpanAnnotations(db); err != nil {
		return err
	}

	logger.Info("Database tracing enabled")
	return nil
}

func registerSpanAnnotations(db *gorm.DB) error {
	if err := db.Callback().Create().After("gorm:create").Register("otel_annotate:create", annotateSpan); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("otel_annotate:query", annotateSpan); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("otel_annotate:update", annotateSpan); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("otel_annotate:delete", annotateSpan); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("otel_annotate:row", annotateSpan); err != nil {
		return err
	}
	return db.Callback().Raw().After("gorm:raw").Register("otel_annotate:raw", annotateSpan)
}

// annotateSpan runs after each GORM operation. The span on the statement
// context is the one otelgorm opened for this query.
func annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
}
