package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/samber/mo"

	"cmdbot/appctx"
	"cmdbot/core"
	"cmdbot/core/log"
	"cmdbot/models"
	"cmdbot/services/commands"
	"cmdbot/services/signature"
)

const (
	AuthErrorText     = "auth error"
	NoMatchText       = "no match"
	CommandFailedText = "command failed"

	authorizationHeader = "Authorization"
)

// ErrorReporter receives command failures for alerting
type ErrorReporter interface {
	AlertOnError(err error, source string)
}

// parsedRequest is the output of the parsing stage
type parsedRequest struct {
	message models.ParsedMessage
	command models.ParsedCommand
}

type WebhookUseCase struct {
	verifier       *signature.Verifier
	registry       *commands.Registry
	handlerTimeout time.Duration
	errorReporter  ErrorReporter
}

// NewWebhookUseCase wires the dispatch pipeline. errorReporter may be nil.
func NewWebhookUseCase(
	verifier *signature.Verifier,
	registry *commands.Registry,
	handlerTimeout time.Duration,
	errorReporter ErrorReporter,
) *WebhookUseCase {
	return &WebhookUseCase{
		verifier:       verifier,
		registry:       registry,
		handlerTimeout: handlerTimeout,
		errorReporter:  errorReporter,
	}
}

// HandleRequest runs one request through verify, parse, dispatch and respond.
// It always returns a well-formed response: 401 when the signature does not
// match, 200 otherwise.
func (u *WebhookUseCase) HandleRequest(ctx context.Context, req models.IncomingRequest) models.HTTPResponse {
	requestID, ok := appctx.GetRequestID(ctx)
	if !ok {
		requestID = core.NewID("req")
		ctx = appctx.SetRequestID(ctx, requestID)
	}
	log.Debug("📨 Webhook request received", "request_id", requestID, "body", string(req.RawBody))

	if err := u.verify(req); err != nil {
		log.Warn("❌ Signature verification failed", "request_id", requestID, "error", err)
		return u.respond(http.StatusUnauthorized, models.NewTextPayload(AuthErrorText))
	}
	log.Info("✅ Signature verification successful", "request_id", requestID)

	parsed, ok := u.parse(requestID, req).Get()
	if !ok {
		return u.respond(http.StatusOK, models.NewTextPayload(NoMatchText))
	}

	return u.respond(http.StatusOK, u.dispatch(ctx, requestID, parsed))
}

func (u *WebhookUseCase) verify(req models.IncomingRequest) error {
	return u.verifier.Ensure(req.Headers.Get(authorizationHeader), req.RawBody)
}

func (u *WebhookUseCase) parse(requestID string, req models.IncomingRequest) mo.Option[parsedRequest] {
	message, err := commands.DecodeMessage(req.RawBody)
	if err != nil {
		log.Info("⚠️ Malformed webhook body", "request_id", requestID, "error", err)
		return mo.None[parsedRequest]()
	}

	command, ok := commands.Parse(message.Text).Get()
	if !ok {
		log.Info("⚠️ Message has no command", "request_id", requestID, "error", core.ErrMalformedInput)
		return mo.None[parsedRequest]()
	}

	log.Info("⚡ Parsed command", "request_id", requestID, "command", command.Name, "args", len(command.Args))
	return mo.Some(parsedRequest{message: message, command: command})
}

func (u *WebhookUseCase) dispatch(ctx context.Context, requestID string, parsed parsedRequest) *models.ResponsePayload {
	cmd, ok := u.registry.Select(parsed.command.Name).Get()
	if !ok {
		log.Info("⚠️ Unknown command", "request_id", requestID, "command", parsed.command.Name)
		return models.NewTextPayload(NoMatchText)
	}

	log.Info("🎯 Processing command", "request_id", requestID, "command", cmd.Name())
	payload, err := u.execute(ctx, cmd, models.CommandInput{
		Message:  parsed.message,
		Args:     parsed.command.Args,
		Commands: u.registry.Names(),
	})
	if err != nil {
		u.reportFailure(requestID, cmd.Name(), err)
		return models.NewTextPayload(CommandFailedText)
	}

	log.Info("✅ Command completed", "request_id", requestID, "command", cmd.Name())
	return payload
}

// reportFailure logs a command failure and alerts on it. The alert source
// names only the command so repeated failures share one cooldown entry.
func (u *WebhookUseCase) reportFailure(requestID, commandName string, err error) {
	if core.IsNotFoundError(err) {
		log.Warn("⚠️ Command found nothing", "request_id", requestID, "command", commandName, "error", err)
	} else {
		log.Error("❌ Command failed", "request_id", requestID, "command", commandName, "error", err)
	}

	if u.errorReporter != nil {
		u.errorReporter.AlertOnError(err, "command "+commandName)
	}
}

type executeResult struct {
	payload *models.ResponsePayload
	err     error
}

// execute runs cmd under the handler timeout. A command that ignores its
// context is abandoned when the timeout expires; panics become errors.
func (u *WebhookUseCase) execute(
	ctx context.Context,
	cmd commands.Command,
	input models.CommandInput,
) (*models.ResponsePayload, error) {
	ctx, cancel := context.WithTimeout(ctx, u.handlerTimeout)
	defer cancel()

	done := make(chan executeResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- executeResult{err: fmt.Errorf("command panicked: %v", r)}
			}
		}()

		payload, err := cmd.Execute(ctx, input)
		if err == nil && payload == nil {
			err = errors.New("command returned no payload")
		}
		done <- executeResult{payload: payload, err: err}
	}()

	select {
	case result := <-done:
		return result.payload, result.err
	case <-ctx.Done():
		return nil, fmt.Errorf("command did not finish: %w", ctx.Err())
	}
}

func (u *WebhookUseCase) respond(statusCode int, payload *models.ResponsePayload) models.HTTPResponse {
	if payload.Type == "" {
		payload.Type = models.MessageType
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error("❌ Failed to encode response payload", "error", err)
		body = []byte(`{"type":"message","text":"` + CommandFailedText + `"}`)
	}

	return models.HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
	}
}
