package grpc

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mvaleed/personnel/internal/auth"
	"github.com/mvaleed/personnel/internal/config"
	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/event"
	"github.com/mvaleed/personnel/internal/service"
	"github.com/mvaleed/personnel/internal/storage/memory"
	"github.com/mvaleed/personnel/internal/validation"
)

type testClient struct {
	client *DirectoryClient
	conn   *grpc.ClientConn
}

func newTestClient(t *testing.T, authEnabled bool) *testClient {
	t.Helper()
	ctx := context.Background()

	store := memory.New()
	require.NoError(t, store.SeedReferenceData(ctx))
	repos := store.Repositories()

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	jwtConfig := auth.DefaultJWTConfig()
	jwtConfig.SecretKey = "test-secret"
	jwtManager := auth.NewJWTManager(jwtConfig)
	publisher := event.NewNoopPublisher()
	pipeline := validation.NewPipeline(validation.NewFields(), repos.Employees, repos.Departments, repos.Certifications)

	srv := NewServer(
		&config.Config{AuthEnabled: authEnabled},
		service.NewEmployeeService(repos, store, pipeline, hasher, publisher, service.DefaultTimeouts()),
		service.NewAuthService(repos.Employees, hasher, jwtManager, publisher),
		service.NewReferenceService(repos, service.DefaultTimeouts().Query),
		jwtManager,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	listener := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(listener) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testClient{client: NewDirectoryClient(conn), conn: conn}
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func employeeRequest(username string) map[string]any {
	return map[string]any{
		"username":     username,
		"fullName":     "Yamada " + username,
		"phoneticName": "ﾔﾏﾀﾞ",
		"birthDate":    "1988/02/29",
		"email":        username + "@example.com",
		"phone":        "03-1234-5678",
		"password":     "password1",
		"departmentId": 2,
		"certifications": []any{
			map[string]any{"certificationId": 3, "startDate": "2021/04/01", "endDate": "2025/04/01", "score": 150},
			map[string]any{"certificationId": 1, "startDate": "2022/04/01", "endDate": "2026/04/01", "score": 120.5},
		},
	}
}

func errorInfo(t *testing.T, err error) (codes.Code, *errdetails.ErrorInfo) {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok)
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return st.Code(), info
		}
	}
	t.Fatalf("no ErrorInfo detail in %v", err)
	return st.Code(), nil
}

func TestDirectory_EmployeeLifecycle(t *testing.T) {
	tc := newTestClient(t, false)
	ctx := context.Background()

	created, err := tc.client.CreateEmployee(ctx, mustStruct(t, employeeRequest("yamada")))
	require.NoError(t, err)
	assert.Equal(t, domain.MsgEmployeeCreated, created.GetFields()["messageCode"].GetStringValue())
	id := created.GetFields()["employeeId"].GetNumberValue()

	list, err := tc.client.SearchEmployees(ctx, mustStruct(t, map[string]any{"name": "yamada", "limit": 10}))
	require.NoError(t, err)
	assert.Equal(t, float64(1), list.GetFields()["totalRecords"].GetNumberValue())
	rows := list.GetFields()["employees"].GetListValue().GetValues()
	require.Len(t, rows, 1)
	row := rows[0].GetStructValue().GetFields()
	assert.Equal(t, "JLPT N1", row["certificationName"].GetStringValue())
	assert.Equal(t, "2026/04/01", row["certificationEndDate"].GetStringValue())
	assert.Equal(t, "Sales", row["departmentName"].GetStringValue())

	detail, err := tc.client.GetEmployee(ctx, mustStruct(t, map[string]any{"employeeId": id}))
	require.NoError(t, err)
	assert.Len(t, detail.GetFields()["certifications"].GetListValue().GetValues(), 2)

	update := employeeRequest("yamada")
	update["employeeId"] = id
	update["password"] = ""
	delete(update, "certifications")
	update["fullName"] = "Yamada Jiro"
	_, err = tc.client.UpdateEmployee(ctx, mustStruct(t, update))
	require.NoError(t, err)

	detail, err = tc.client.GetEmployee(ctx, mustStruct(t, map[string]any{"employeeId": id}))
	require.NoError(t, err)
	assert.Equal(t, "Yamada Jiro", detail.GetFields()["fullName"].GetStringValue())
	assert.Len(t, detail.GetFields()["certifications"].GetListValue().GetValues(), 2)

	deleted, err := tc.client.DeleteEmployee(ctx, mustStruct(t, map[string]any{"employeeId": id}))
	require.NoError(t, err)
	assert.Equal(t, domain.MsgEmployeeDeleted, deleted.GetFields()["messageCode"].GetStringValue())

	_, err = tc.client.GetEmployee(ctx, mustStruct(t, map[string]any{"employeeId": id}))
	code, info := errorInfo(t, err)
	assert.Equal(t, codes.NotFound, code)
	assert.Equal(t, domain.CodeEmployeeNotFound, info.GetReason())
	assert.Equal(t, []string{domain.FieldEmployeeID}, ErrorInfoParams(info))
}

func TestDirectory_ErrorMapping(t *testing.T) {
	tc := newTestClient(t, false)
	ctx := context.Background()
	_, err := tc.client.CreateEmployee(ctx, mustStruct(t, employeeRequest("kimura")))
	require.NoError(t, err)

	t.Run("duplicate email", func(t *testing.T) {
		req := employeeRequest("kimura2")
		req["email"] = "kimura@example.com"
		_, err := tc.client.CreateEmployee(ctx, mustStruct(t, req))
		code, info := errorInfo(t, err)
		assert.Equal(t, codes.AlreadyExists, code)
		assert.Equal(t, domain.CodeDuplicate, info.GetReason())
		assert.Equal(t, []string{domain.FieldEmail}, ErrorInfoParams(info))
	})

	t.Run("end date before start date", func(t *testing.T) {
		req := employeeRequest("mori")
		req["certifications"] = []any{
			map[string]any{"certificationId": 1, "startDate": "2022/04/01", "endDate": "2021/04/01", "score": 100},
		}
		_, err := tc.client.CreateEmployee(ctx, mustStruct(t, req))
		code, info := errorInfo(t, err)
		assert.Equal(t, codes.FailedPrecondition, code)
		assert.Equal(t, domain.CodeEndBeforeStart, info.GetReason())
	})

	t.Run("invalid sort directive", func(t *testing.T) {
		_, err := tc.client.SearchEmployees(ctx, mustStruct(t, map[string]any{"sortEndDate": "sideways"}))
		code, info := errorInfo(t, err)
		assert.Equal(t, codes.InvalidArgument, code)
		assert.Equal(t, domain.CodeInvalidOrder, info.GetReason())
		assert.Equal(t, []string{domain.FieldSortEndDate}, ErrorInfoParams(info))
	})

	t.Run("mistyped field", func(t *testing.T) {
		req := employeeRequest("ono")
		req["departmentId"] = "abc"
		_, err := tc.client.CreateEmployee(ctx, mustStruct(t, req))
		code, info := errorInfo(t, err)
		assert.Equal(t, codes.InvalidArgument, code)
		assert.Equal(t, domain.CodeMalformedRequest, info.GetReason())
		assert.Equal(t, []string{domain.FieldRequestBody}, ErrorInfoParams(info))
	})

	t.Run("missing employee id", func(t *testing.T) {
		_, err := tc.client.DeleteEmployee(ctx, mustStruct(t, map[string]any{}))
		code, _ := errorInfo(t, err)
		assert.Equal(t, codes.InvalidArgument, code)
	})
}

func TestDirectory_Auth(t *testing.T) {
	tc := newTestClient(t, true)
	ctx := context.Background()

	_, err := tc.client.ListDepartments(ctx, &structpb.Struct{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = tc.client.Login(ctx, mustStruct(t, map[string]any{"username": "nobody", "password": "password1"}))
	code, info := errorInfo(t, err)
	assert.Equal(t, codes.Unauthenticated, code)
	assert.Equal(t, domain.CodeBadCredentials, info.GetReason())

	health, err := healthpb.NewHealthClient(tc.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.GetStatus())
}

func TestDirectory_AuthenticatedCall(t *testing.T) {
	tc := newTestClient(t, false)
	ctx := context.Background()
	_, err := tc.client.CreateEmployee(ctx, mustStruct(t, employeeRequest("hayashi")))
	require.NoError(t, err)

	login, err := tc.client.Login(ctx, mustStruct(t, map[string]any{"username": "hayashi", "password": "password1"}))
	require.NoError(t, err)
	token := login.GetFields()["accessToken"].GetStringValue()
	require.NotEmpty(t, token)

	authed := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	certs, err := tc.client.ListCertifications(authed, &structpb.Struct{})
	require.NoError(t, err)
	assert.Len(t, certs.GetFields()["certifications"].GetListValue().GetValues(), 5)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"validation", domain.NewValidationError(domain.CodeRequired, domain.FieldEmail), codes.InvalidArgument},
		{"duplicate", domain.NewDuplicateError(domain.CodeDuplicate, domain.FieldUsername), codes.AlreadyExists},
		{"business", domain.NewBusinessLogicError(domain.CodeEndBeforeStart, domain.FieldCertEndDate), codes.FailedPrecondition},
		{"not found", domain.NewNotFoundError(domain.CodeEmployeeNotFound, domain.FieldEmployeeID), codes.NotFound},
		{"system", domain.NewSystemError(domain.CodeStoreFailure, io.ErrUnexpectedEOF), codes.Internal},
		{"untyped", io.EOF, codes.Internal},
		{"credentials", domain.ErrInvalidCredential, codes.Unauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, status.Code(mapDomainError(tt.err)))
		})
	}
	assert.NoError(t, mapDomainError(nil))
}

func TestStringField(t *testing.T) {
	s := mustStruct(t, map[string]any{"a": "x", "b": 5, "c": 2.5, "d": nil, "e": true})

	assert.Equal(t, "x", stringField(s, "a"))
	assert.Equal(t, "5", stringField(s, "b"))
	assert.Equal(t, "2.5", stringField(s, "c"))
	assert.Equal(t, "", stringField(s, "d"))
	assert.Equal(t, "true", stringField(s, "e"))
	assert.Equal(t, "", stringField(s, "missing"))
}
