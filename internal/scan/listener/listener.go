package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/pharmatrack/stock-service/config"
	"github.com/pharmatrack/stock-service/internal/model"
	"github.com/pharmatrack/stock-service/internal/scan/session"
)

// ScanListener feeds scan events from the RFID reporting topic into the
// session manager.
type ScanListener struct {
	reader   *kafka.Reader
	sessions *session.Manager
	logger   *zap.Logger
}

func NewScanListener(cfg config.KafkaConfig, sessions *session.Manager, log *zap.Logger) *ScanListener {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
	return &ScanListener{
		reader:   reader,
		sessions: sessions,
		logger:   log,
	}
}

func (l *ScanListener) Start(ctx context.Context) {
	l.logger.Info("starting scan feed listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping scan feed listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *ScanListener) Close() error {
	return l.reader.Close()
}

func (l *ScanListener) processMessage(ctx context.Context, value []byte) {
	var ev model.ScanEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		l.logger.Error("failed to unmarshal scan event", zap.Error(err))
		return
	}
	if ev.StationID == "" || ev.TagID == "" {
		l.logger.Warn("dropping scan event without station or tag",
			zap.String("station_id", ev.StationID),
			zap.String("tag_id", ev.TagID),
		)
		return
	}

	sess := l.sessions.Get(ev.StationID)
	outcome, err := sess.HandleScan(ctx, ev)
	if err != nil {
		// Domain rejections are the session's answer, not feed failures.
		if errors.Is(err, model.ErrSessionInactive) || errors.Is(err, model.ErrConfirmationPending) {
			l.logger.Info("scan not accepted",
				zap.String("station_id", ev.StationID),
				zap.String("tag_id", ev.TagID),
				zap.Error(err),
			)
			return
		}
		l.logger.Error("failed to process scan event",
			zap.String("station_id", ev.StationID),
			zap.String("tag_id", ev.TagID),
			zap.Error(err),
		)
		return
	}

	if outcome.Pending != nil {
		l.logger.Info("scan awaiting confirmation",
			zap.String("station_id", ev.StationID),
			zap.String("tag_id", ev.TagID),
		)
		return
	}
	l.logger.Info("scan committed",
		zap.String("station_id", ev.StationID),
		zap.String("tag_id", ev.TagID),
		zap.String("movement_id", outcome.Committed.Movement.ID),
	)
}
