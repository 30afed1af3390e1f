package auth

import (
	"context"

	"github.com/kbukum/identity-backend/errors"
	"github.com/kbukum/identity-backend/logger"
	"github.com/kbukum/identity-backend/observability"

	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "auth"

	opLogin   = "login"
	opGetUser = "get_user"
)

// Service is the authentication facade. Each call selects a provider,
// delegates to it and reports the outcome as an *errors.AppError.
type Service struct {
	selector *Selector
	metrics  *observability.Metrics
	log      *logger.Logger
}

// NewService creates a Service. metrics may be nil.
func NewService(selector *Selector, metrics *observability.Metrics) *Service {
	return &Service{
		selector: selector,
		metrics:  metrics,
		log:      logger.Get(serviceName),
	}
}

// Login authenticates creds against the selected provider.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, *errors.AppError) {
	provider := s.selector.Select()
	ctx, oc, span := s.begin(ctx, opLogin, observability.SpanAuthLogin, provider)

	var (
		result *LoginResult
		err    error
	)
	if provider == nil {
		err = errors.InternalMessage("No auth provider configured")
	} else {
		result, err = provider.Login(ctx, creds)
		if err == nil && result == nil {
			err = errors.InternalMessage("Auth login failed")
		}
	}

	appErr := errors.Wrap(err)
	s.end(ctx, oc, span, appErr)
	if appErr != nil {
		return nil, appErr
	}
	return result, nil
}

// GetUserFromToken resolves token to a profile using the selected provider.
func (s *Service) GetUserFromToken(ctx context.Context, token string) (*Profile, *errors.AppError) {
	provider := s.selector.Select()
	ctx, oc, span := s.begin(ctx, opGetUser, observability.SpanAuthGetUser, provider)

	var (
		profile *Profile
		err     error
	)
	if provider == nil {
		err = errors.InternalMessage("No auth provider configured")
	} else {
		profile, err = provider.GetUserFromToken(ctx, token)
		if err == nil && profile == nil {
			err = errors.InternalMessage("Auth provider returned no user")
		}
	}

	appErr := errors.Wrap(err)
	s.end(ctx, oc, span, appErr)
	if appErr != nil {
		return nil, appErr
	}
	return profile, nil
}

func (s *Service) begin(ctx context.Context, op, spanName string, p Provider) (context.Context, *observability.OperationContext, trace.Span) {
	providerName := "none"
	if p != nil {
		providerName = string(p.ID())
	}
	oc := observability.NewOperationContext(serviceName, op, providerName, logger.RequestIDFromContext(ctx), s.metrics)
	ctx, span := oc.StartSpanForOperation(ctx, spanName)
	return ctx, oc, span
}

func (s *Service) end(ctx context.Context, oc *observability.OperationContext, span trace.Span, appErr *errors.AppError) {
	fields := logger.Fields(
		logger.FieldOperation, oc.OperationName,
		logger.FieldProvider, oc.Provider,
		logger.FieldDuration, oc.Duration().Milliseconds(),
	)
	log := s.log.WithContext(ctx)

	if appErr == nil {
		oc.EndOperation(ctx, span, "", nil)
		fields[logger.FieldStatus] = observability.StatusOK
		log.Info("auth operation completed", fields)
		return
	}

	oc.EndOperation(ctx, span, string(appErr.Code), appErr)
	fields[logger.FieldStatus] = observability.StatusError
	fields[logger.FieldCode] = string(appErr.Code)
	fields[logger.FieldError] = appErr.Message
	if appErr.HTTPStatus >= 500 {
		log.Error("auth operation failed", fields)
		return
	}
	log.Warn("auth operation failed", fields)
}
