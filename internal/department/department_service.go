package department

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	departmenterrors "go-payroll/internal/department/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const summaryCacheTTL = 5 * time.Minute

type Service interface {
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Summarize(ctx context.Context, id string, req SummarizeRequest) (DepartmentSummaryResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]DepartmentResponse, len(rows))
	for i, d := range rows {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

// Summarize serves payroll totals for a department over a date range.
// The cache is a read-side convenience with a short TTL; a summary may
// trail a just-processed payroll by a few minutes.
func (s *service) Summarize(ctx context.Context, id string, req SummarizeRequest) (DepartmentSummaryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentSummaryResponse{}, departmenterrors.ErrInvalidDepartmentID
	}
	from, err := parseDate(req.From)
	if err != nil {
		return DepartmentSummaryResponse{}, err
	}
	to, err := parseDate(req.To)
	if err != nil {
		return DepartmentSummaryResponse{}, err
	}
	if from.After(to) {
		return DepartmentSummaryResponse{}, departmenterrors.ErrInvalidDateRange
	}

	cacheKey := fmt.Sprintf("departments:summary:%s:%s:%s", id, req.From, req.To)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp DepartmentSummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		dept, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		summary, err := s.repo.Summarize(ctx, id, from, to)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := DepartmentSummaryResponse{
			DepartmentID:       dept.ID.String(),
			DepartmentName:     dept.Name,
			CostCenter:         dept.CostCenter,
			From:               req.From,
			To:                 req.To,
			PayrollCount:       summary.PayrollCount,
			TotalGrossPay:      summary.TotalGrossPay.StringFixed(2),
			TotalNetPay:        summary.TotalNetPay.StringFixed(2),
			TotalRegularHours:  summary.TotalRegularHours.StringFixed(2),
			TotalOvertimeHours: summary.TotalOvertimeHours.StringFixed(2),
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, summaryCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return DepartmentSummaryResponse{}, err
	}

	return v.(DepartmentSummaryResponse), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, departmenterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	return err
}

func mapToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		CostCenter:  d.CostCenter,
		Description: d.Description,
	}
}
