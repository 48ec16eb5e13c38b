package sender

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/franchu01/soma/internal/lib/smtp"
	"github.com/franchu01/soma/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
	written []byte
}

func (m *MockSMTPWriter) Write(p []byte) (int, error) {
	m.written = append(m.written, p...)
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestService(transport smtp.TransportInterface) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewService(logger, transport)
}

func reminderBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.ReminderMessage{
		Email:       "ana@example.com",
		Name:        "Ana Gomez",
		ReminderDay: 10,
	})
	require.NoError(t, err)
	return body
}

func TestSendPaymentReminder(t *testing.T) {
	mockTransport := new(MockTransport)
	mockClient := new(MockSMTPClient)
	mockWriter := new(MockSMTPWriter)

	mockTransport.On("GetSMTPUser").Return("soma@example.com")
	mockTransport.On("Connect").Return(mockClient, nil)
	mockClient.On("Mail", "soma@example.com").Return(nil)
	mockClient.On("Rcpt", "ana@example.com").Return(nil)
	mockClient.On("Data").Return(mockWriter, nil)
	mockWriter.On("Write", mock.Anything).Return(0, nil)
	mockWriter.On("Close").Return(nil)
	mockClient.On("Quit").Return(nil)
	mockClient.On("Close").Return(nil)

	service := newTestService(mockTransport)

	err := service.SendPaymentReminder(reminderBody(t))
	require.NoError(t, err)

	sent := string(mockWriter.written)
	assert.Contains(t, sent, "Subject: Recordatorio de pago de gimnasio")
	assert.Contains(t, sent, "Hola Ana Gomez!")
	assert.Contains(t, sent, "dia 10")

	mockTransport.AssertExpectations(t)
	mockClient.AssertExpectations(t)
	mockWriter.AssertExpectations(t)
}

func TestSendPaymentReminderInvalidBody(t *testing.T) {
	mockTransport := new(MockTransport)
	service := newTestService(mockTransport)

	err := service.SendPaymentReminder([]byte("not a json"))
	assert.Error(t, err)
	mockTransport.AssertNotCalled(t, "Connect")
}

func TestSendPaymentReminderConnectError(t *testing.T) {
	mockTransport := new(MockTransport)
	mockTransport.On("GetSMTPUser").Return("soma@example.com")
	mockTransport.On("Connect").Return(nil, errors.New("dial error"))

	service := newTestService(mockTransport)

	err := service.SendPaymentReminder(reminderBody(t))
	assert.Error(t, err)
	mockTransport.AssertExpectations(t)
}

func TestSendPaymentReminderRcptError(t *testing.T) {
	mockTransport := new(MockTransport)
	mockClient := new(MockSMTPClient)

	mockTransport.On("GetSMTPUser").Return("soma@example.com")
	mockTransport.On("Connect").Return(mockClient, nil)
	mockClient.On("Mail", "soma@example.com").Return(nil)
	mockClient.On("Rcpt", "ana@example.com").Return(errors.New("mailbox unavailable"))
	mockClient.On("Close").Return(nil)

	service := newTestService(mockTransport)

	err := service.SendPaymentReminder(reminderBody(t))
	assert.Error(t, err)
	mockClient.AssertExpectations(t)
}
