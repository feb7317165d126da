package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/nross83/storefront/internal/domain/model"
)

// Message is a single outgoing notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Client exposes operations to deliver notifications.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPClient delivers messages over plain SMTP.
type SMTPClient struct {
	addr   string
	from   string
	logger *slog.Logger
}

var sendMail = smtp.SendMail

// NewSMTPClient creates a client talking to the given host:port.
func NewSMTPClient(addr, from string, logger *slog.Logger) (*SMTPClient, error) {
	if addr == "" {
		return nil, fmt.Errorf("smtp address must be provided")
	}
	if from == "" {
		return nil, fmt.Errorf("smtp sender must be provided")
	}
	return &SMTPClient{addr: addr, from: from, logger: logger}, nil
}

// Send delivers one message. The context is honored only up front; smtp in
// the standard library has no per-command deadline hook.
func (c *SMTPClient) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", c.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	if err := sendMail(c.addr, nil, c.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// NoopClient drops every message. Used when no SMTP server is configured.
type NoopClient struct {
	logger *slog.Logger
}

// NewNoopClient creates a client that only logs deliveries.
func NewNoopClient(logger *slog.Logger) *NoopClient {
	return &NoopClient{logger: logger}
}

func (c *NoopClient) Send(_ context.Context, msg Message) error {
	c.logger.Info("mail delivery skipped: no smtp configured",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}

// Welcome builds the registration greeting.
func Welcome(to, name string) Message {
	return Message{
		To:      to,
		Subject: "Welcome to our store",
		Body:    fmt.Sprintf("Hi %s,\n\nYour account is ready. Happy shopping!\n", name),
	}
}

// OrderConfirmation builds the post-checkout receipt.
func OrderConfirmation(to, name string, order *model.Order) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order #%d.\n\n", name, order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %d x %s @ %.2f\n", item.Quantity, item.Name, item.Price)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.TotalAmount)
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Order confirmation - #%d", order.ID),
		Body:    b.String(),
	}
}

// OrderStatusUpdate builds the status change notice.
func OrderStatusUpdate(to, name string, order *model.Order) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Order update: %s - #%d", strings.ToUpper(string(order.Status)), order.ID),
		Body:    fmt.Sprintf("Hi %s,\n\nYour order #%d is now %s.\n", name, order.ID, order.Status),
	}
}
