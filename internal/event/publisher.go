package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"edutech_backend/internal/scoring"
	"edutech_backend/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const RoutingQuizSubmitted = "quiz.submitted"

// QuizSubmitted 测验提交后发布的事件
type QuizSubmitted struct {
	ResultID  string              `json:"resultId"`
	Username  string              `json:"username"`
	Scores    scoring.TrackScores `json:"scores"`
	TopTrack  scoring.Track       `json:"topTrack"`
	Timestamp time.Time           `json:"timestamp"`
}

type Publisher interface {
	PublishQuizSubmitted(ctx context.Context, evt *QuizSubmitted) error
	Close() error
}

type EventPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	enabled  bool
}

// NewEventPublisher uri 为空时返回关闭状态的发布器
func NewEventPublisher(uri, exchange string) (*EventPublisher, error) {
	if uri == "" {
		logger.Log.Warn("RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{exchange: exchange}, nil
	}

	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Log.Info("Event publisher initialized", zap.String("exchange", exchange))

	return &EventPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		enabled:  true,
	}, nil
}

func (p *EventPublisher) Enabled() bool {
	return p.enabled
}

func (p *EventPublisher) PublishQuizSubmitted(ctx context.Context, evt *QuizSubmitted) error {
	if !p.enabled {
		return nil
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// amqp.Channel 不支持并发发布
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,           // exchange
		RoutingQuizSubmitted, // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    evt.Timestamp,
			MessageId:    evt.ResultID,
			Body:         body,
			Headers: amqp.Table{
				"event_type": RoutingQuizSubmitted,
				"username":   evt.Username,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	logger.Log.Debug("Published event",
		zap.String("type", RoutingQuizSubmitted),
		zap.String("result_id", evt.ResultID))
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.enabled {
		return nil
	}

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			logger.Log.Warn("Error closing RabbitMQ channel", zap.Error(err))
		}
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}
	return nil
}

// MockPublisher 记录发布的事件，供测试使用
type MockPublisher struct {
	mu     sync.Mutex
	Events []QuizSubmitted
	Err    error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make([]QuizSubmitted, 0)}
}

func (m *MockPublisher) PublishQuizSubmitted(ctx context.Context, evt *QuizSubmitted) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, *evt)
	return nil
}

func (m *MockPublisher) Published() []QuizSubmitted {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]QuizSubmitted(nil), m.Events...)
}

func (m *MockPublisher) Close() error {
	return nil
}
