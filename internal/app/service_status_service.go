package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/juju/errors"

	coreservice "github.com/example/monitor/internal/core/service"
	"github.com/example/monitor/internal/core/statuslog"
	"github.com/example/monitor/internal/logger"
	"github.com/example/monitor/internal/ports/primary"
	"github.com/example/monitor/internal/ports/secondary"
)

// ServiceStatusServiceImpl implements the ServiceStatusService interface.
type ServiceStatusServiceImpl struct {
	serviceRepo   secondary.ServiceRepository
	statusLogRepo secondary.StatusLogRepository
	cache         secondary.StatusCache // optional
	feed          secondary.StatusFeed  // optional
	log           logger.Logger
	now           func() time.Time
}

// NewServiceStatusService creates a new ServiceStatusService with injected
// dependencies. cache and feed may be nil.
func NewServiceStatusService(
	serviceRepo secondary.ServiceRepository,
	statusLogRepo secondary.StatusLogRepository,
	cache secondary.StatusCache,
	feed secondary.StatusFeed,
	log logger.Logger,
) *ServiceStatusServiceImpl {
	if log == nil {
		log = logger.Nop()
	}
	return &ServiceStatusServiceImpl{
		serviceRepo:   serviceRepo,
		statusLogRepo: statusLogRepo,
		cache:         cache,
		feed:          feed,
		log:           log.With(logger.String("component", "service_status")),
		now:           time.Now,
	}
}

// FetchAll returns every service ordered by ID.
func (s *ServiceStatusServiceImpl) FetchAll(ctx context.Context) ([]*primary.Service, error) {
	records, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	services := make([]*primary.Service, len(records))
	for i, r := range records {
		services[i] = s.recordToService(r)
	}

	s.log.Debug("fetched all services", logger.Int("count", len(services)))
	return services, nil
}

// Fetch retrieves a service by ID.
func (s *ServiceStatusServiceImpl) Fetch(ctx context.Context, id int64) (*primary.Service, error) {
	record, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	service := s.recordToService(record)
	s.log.Debug("fetched service", logger.Any("service", service))
	return service, nil
}

// FetchByURL retrieves the service registered under exactly this URL.
func (s *ServiceStatusServiceImpl) FetchByURL(ctx context.Context, url string) (*primary.Service, error) {
	record, err := s.serviceRepo.GetByURL(ctx, url)
	if err != nil {
		return nil, err
	}

	service := s.recordToService(record)
	s.log.Debug("fetched service by url", logger.Any("service", service))
	return service, nil
}

// Create validates and persists a new service. Persistence failures are
// returned to the caller.
func (s *ServiceStatusServiceImpl) Create(ctx context.Context, req primary.CreateServiceRequest) (*primary.CreateServiceResponse, error) {
	url := strings.TrimSpace(req.URL)
	exists, err := s.urlExists(ctx, url)
	if err != nil {
		return nil, err
	}

	guardCtx := coreservice.CreateServiceContext{
		URL:       url,
		URLExists: exists,
		Metadata:  req.Metadata,
	}
	if result := coreservice.CanCreateService(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	record := &secondary.ServiceRecord{
		URL:         url,
		Name:        req.Name,
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	id, err := s.serviceRepo.Create(ctx, record)
	if err != nil {
		s.log.Error("failed to create service", logger.String("url", url), logger.Error(err))
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	created, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created service: %w", err)
	}

	service := s.recordToService(created)
	s.log.Debug("created service", logger.Any("service", service))

	return &primary.CreateServiceResponse{
		ServiceID: id,
		Service:   service,
	}, nil
}

// FetchStatus returns the most recent observation for a service.
func (s *ServiceStatusServiceImpl) FetchStatus(ctx context.Context, serviceID int64) (*primary.StatusLog, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetLatest(ctx, serviceID)
		switch {
		case err != nil:
			s.log.Warn("status cache read failed", logger.Int64("service_id", serviceID), logger.Error(err))
		case ok:
			status := s.recordToStatusLog(cached)
			s.log.Debug("fetched status from cache", logger.Any("status", status))
			return status, nil
		}
	}

	record, err := s.statusLogRepo.GetLatest(ctx, serviceID)
	if errors.Is(err, errors.NotFound) {
		return nil, errors.NotFoundf("recent status log for service %d", serviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch status for service %d: %w", serviceID, err)
	}

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, record); err != nil {
			s.log.Warn("status cache write failed", logger.Int64("service_id", serviceID), logger.Error(err))
		}
	}

	status := s.recordToStatusLog(record)
	s.log.Debug("fetched status", logger.Any("status", status))
	return status, nil
}

// RecordStatus appends an observation for an existing service.
func (s *ServiceStatusServiceImpl) RecordStatus(ctx context.Context, req primary.RecordStatusRequest) (*primary.StatusLog, error) {
	prepared, err := statuslog.PrepareRecord(statuslog.RecordStatusContext{
		ServiceID: req.ServiceID,
		Status:    req.Status,
		Timestamp: req.Timestamp,
	}, s.now())
	if err != nil {
		return nil, err
	}

	if _, err := s.serviceRepo.GetByID(ctx, req.ServiceID); err != nil {
		return nil, err
	}

	record := &secondary.StatusLogRecord{
		ServiceID: req.ServiceID,
		Status:    prepared.Status,
		Message:   req.Message,
		Timestamp: prepared.Timestamp,
	}

	id, err := s.statusLogRepo.Append(ctx, record)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record status: %w", err)
	}
	record.ID = id

	s.refreshCache(ctx, req.ServiceID)
	if s.feed != nil {
		s.feed.Publish(*record)
	}

	status := s.recordToStatusLog(record)
	s.log.Debug("recorded status", logger.Any("status", status))
	return status, nil
}

// refreshCache writes the store's latest entry through to the cache, or drops
// the cached entry when that fails. SetLatest keeps the newer of the two when
// a concurrent FetchStatus fills the cache with an older read.
func (s *ServiceStatusServiceImpl) refreshCache(ctx context.Context, serviceID int64) {
	if s.cache == nil {
		return
	}

	latest, err := s.statusLogRepo.GetLatest(ctx, serviceID)
	if err == nil {
		err = s.cache.SetLatest(ctx, latest)
		if err == nil {
			return
		}
	}
	s.log.Warn("status cache refresh failed", logger.Int64("service_id", serviceID), logger.Error(err))

	if err := s.cache.Invalidate(ctx, serviceID); err != nil {
		s.log.Warn("status cache invalidation failed", logger.Int64("service_id", serviceID), logger.Error(err))
	}
}

// ListStatus returns up to limit observations for a service, newest first.
func (s *ServiceStatusServiceImpl) ListStatus(ctx context.Context, serviceID int64, limit int) ([]*primary.StatusLog, error) {
	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}

	records, err := s.statusLogRepo.List(ctx, secondary.StatusLogFilters{
		ServiceID: serviceID,
		Limit:     statuslog.ResolveLimit(limit, primary.DefaultHistoryLimit, primary.MaxHistoryLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list status logs: %w", err)
	}

	logs := make([]*primary.StatusLog, len(records))
	for i, r := range records {
		logs[i] = s.recordToStatusLog(r)
	}

	s.log.Debug("listed status history", logger.Int64("service_id", serviceID), logger.Int("count", len(logs)))
	return logs, nil
}

// SubscribeStatus streams observations recorded after the call until ctx is
// done.
func (s *ServiceStatusServiceImpl) SubscribeStatus(ctx context.Context, serviceID int64) (<-chan *primary.StatusLog, error) {
	if s.feed == nil {
		return nil, errors.NotSupportedf("status streaming")
	}
	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}

	records, cancel := s.feed.Subscribe(serviceID)
	out := make(chan *primary.StatusLog)

	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case record, ok := <-records:
				if !ok {
					return
				}
				select {
				case out <- s.recordToStatusLog(&record):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	s.log.Debug("status subscription opened", logger.Int64("service_id", serviceID))
	return out, nil
}

func (s *ServiceStatusServiceImpl) urlExists(ctx context.Context, url string) (bool, error) {
	if url == "" {
		return false, nil
	}
	_, err := s.serviceRepo.GetByURL(ctx, url)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errors.NotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check service url: %w", err)
}

// Helper methods

func (s *ServiceStatusServiceImpl) recordToService(r *secondary.ServiceRecord) *primary.Service {
	var metadata map[string]string
	if len(r.Metadata) > 0 {
		metadata = make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			metadata[k] = v
		}
	}
	return &primary.Service{
		ID:          r.ID,
		URL:         r.URL,
		Name:        r.Name,
		Description: r.Description,
		Metadata:    metadata,
		CreatedAt:   r.CreatedAt,
	}
}

func (s *ServiceStatusServiceImpl) recordToStatusLog(r *secondary.StatusLogRecord) *primary.StatusLog {
	return &primary.StatusLog{
		ID:        r.ID,
		ServiceID: r.ServiceID,
		Status:    r.Status,
		Message:   r.Message,
		Timestamp: r.Timestamp,
	}
}

// Ensure ServiceStatusServiceImpl implements the interface
var _ primary.ServiceStatusService = (*ServiceStatusServiceImpl)(nil)
