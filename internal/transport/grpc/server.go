package grpc_server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"coursehub/internal/application/usecase"
	"coursehub/internal/domain"
	"coursehub/internal/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type CatalogServer struct {
	catalog *usecase.Catalog
	log     *logrus.Logger
}

func NewCatalogServer(catalog *usecase.Catalog, log *logrus.Logger) *CatalogServer {
	return &CatalogServer{catalog: catalog, log: log}
}

// NewServer wires the catalog, health and reflection services into one
// grpc.Server with request logging.
func NewServer(srv *CatalogServer, log *logrus.Logger) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(log)))
	RegisterCatalogServiceServer(s, srv)

	hs := health.NewServer()
	hs.SetServingStatus(catalogServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	reflection.Register(s)
	return s
}

func loggingInterceptor(log *logrus.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		entry := log.WithFields(logrus.Fields{
			"method":  info.FullMethod,
			"code":    status.Code(err).String(),
			"latency": time.Since(start).String(),
		})
		if status.Code(err) == codes.Internal {
			entry.WithError(err).Error("grpc call failed")
		} else {
			entry.Info("grpc call handled")
		}
		return resp, err
	}
}

func (s *CatalogServer) GetCourse(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id := req.GetValue()
	if _, err := uuid.Parse(id); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid course id")
	}

	course, err := s.catalog.Courses.Get(ctx, id)
	if errors.Is(err, domain.ErrCourseNotFound) {
		return nil, status.Error(codes.NotFound, "course not found")
	}
	if err != nil {
		return nil, s.internal(err)
	}
	return toStruct(course)
}

func (s *CatalogServer) ListCourses(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	page, limit, err := pageArgs(req)
	if err != nil {
		return nil, err
	}
	res, err := s.catalog.Courses.List(ctx, page, limit)
	if err != nil {
		return nil, s.internal(err)
	}
	return listStruct(page, limit, "totalCourses", res)
}

func (s *CatalogServer) ListCourseDetails(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	page, limit, err := pageArgs(req)
	if err != nil {
		return nil, err
	}
	res, err := s.catalog.Courses.ListWithDetails(ctx, page, limit)
	if err != nil {
		return nil, s.internal(err)
	}
	return listStruct(page, limit, "totalCourses", res)
}

func (s *CatalogServer) ListModules(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	courseID, err := idArg(req, "courseId")
	if err != nil {
		return nil, err
	}
	page, limit, err := pageArgs(req)
	if err != nil {
		return nil, err
	}
	res, err := s.catalog.Modules.List(ctx, courseID, page, limit)
	if err != nil {
		return nil, s.internal(err)
	}
	return listStruct(page, limit, "totalModules", res)
}

func (s *CatalogServer) ListLessons(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	moduleID, err := idArg(req, "moduleId")
	if err != nil {
		return nil, err
	}
	page, limit, err := pageArgs(req)
	if err != nil {
		return nil, err
	}
	res, err := s.catalog.Lessons.List(ctx, moduleID, page, limit)
	if err != nil {
		return nil, s.internal(err)
	}
	return listStruct(page, limit, "totalLessons", res)
}

func (s *CatalogServer) internal(err error) error {
	s.log.WithError(err).Error("catalog read failed")
	return status.Error(codes.Internal, "internal error")
}

func idArg(req *structpb.Struct, field string) (string, error) {
	v, ok := req.GetFields()[field]
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	id := v.GetStringValue()
	if _, err := uuid.Parse(id); err != nil {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a valid UUID", field)
	}
	return id, nil
}

func pageArgs(req *structpb.Struct) (int, int, error) {
	page, err := positiveArg(req, "page", pagination.DefaultPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err := positiveArg(req, "limit", pagination.DefaultLimit)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func positiveArg(req *structpb.Struct, field string, def int) (int, error) {
	v, ok := req.GetFields()[field]
	if !ok {
		return def, nil
	}
	n, isNum := v.GetKind().(*structpb.Value_NumberValue)
	if !isNum || n.NumberValue != math.Trunc(n.NumberValue) || n.NumberValue < 1 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer of at least 1", field)
	}
	return int(min(n.NumberValue, math.MaxInt32)), nil
}

func listStruct[T any](page, limit int, totalKey string, res pagination.Page[T]) (*structpb.Struct, error) {
	return toStruct(map[string]any{
		"page":       page,
		"limit":      limit,
		totalKey:     res.Total,
		"totalPages": res.TotalPages,
		"data":       res.Items,
	})
}

// toStruct converts v through its JSON form so field names match the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	return out, nil
}
