package grpc

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mvaleed/personnel/internal/domain"
)

// errorDomain is reported in every ErrorInfo detail.
const errorDomain = "personnel"

// mapDomainError converts domain errors to gRPC status errors carrying an
// ErrorInfo detail with the error code and its params.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrInvalidCredential) {
		return statusWithInfo(codes.Unauthenticated, "invalid credentials", domain.CodeBadCredentials, nil)
	}

	de := domain.AsError(err)
	return statusWithInfo(grpcCode(de.Kind), de.Error(), de.Code, de.Params)
}

func grpcCode(kind domain.Kind) codes.Code {
	switch kind {
	case domain.KindValidation:
		return codes.InvalidArgument
	case domain.KindDuplicate:
		return codes.AlreadyExists
	case domain.KindBusinessLogic:
		return codes.FailedPrecondition
	case domain.KindNotFound:
		return codes.NotFound
	default:
		return codes.Internal
	}
}

func statusWithInfo(code codes.Code, msg, reason string, params []string) error {
	metadata := make(map[string]string, len(params))
	for i, p := range params {
		metadata[paramKey(i)] = p
	}

	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   errorDomain,
		Metadata: metadata,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func paramKey(i int) string {
	return "param" + strconv.Itoa(i)
}

// ErrorInfoParams returns the params of an ErrorInfo detail in order.
func ErrorInfoParams(info *errdetails.ErrorInfo) []string {
	params := make([]string, 0, len(info.GetMetadata()))
	for i := 0; ; i++ {
		p, ok := info.GetMetadata()[paramKey(i)]
		if !ok {
			return params
		}
		params = append(params, p)
	}
}

// toStruct renders a payload value as a Struct through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encoding response")
	}
	var m map[string]any
	if err = json.Unmarshal(data, &m); err != nil {
		return nil, status.Error(codes.Internal, "encoding response")
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "encoding response")
	}
	return out, nil
}

// fromStruct decodes a request Struct into v through its JSON form.
func fromStruct(in *structpb.Struct, v any) error {
	data, err := json.Marshal(in.AsMap())
	if err != nil {
		return domain.NewValidationError(domain.CodeMalformedRequest, domain.FieldRequestBody)
	}
	if err = json.Unmarshal(data, v); err != nil {
		return domain.NewValidationError(domain.CodeMalformedRequest, domain.FieldRequestBody)
	}
	return nil
}

// stringField reads an optional scalar as text. Absent and null fields
// yield "". Whole numbers are rendered without a fraction.
func stringField(in *structpb.Struct, key string) string {
	v, ok := in.GetFields()[key]
	if !ok {
		return ""
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_NumberValue:
		if k.NumberValue == math.Trunc(k.NumberValue) && math.Abs(k.NumberValue) < 1<<53 {
			return strconv.FormatInt(int64(k.NumberValue), 10)
		}
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64)
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue)
	default:
		return ""
	}
}

// employeeID reads the employeeId field of a request.
func employeeID(in *structpb.Struct) (int64, error) {
	id, err := strconv.ParseInt(stringField(in, "employeeId"), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(domain.CodeNotPositiveNumber, domain.FieldEmployeeID)
	}
	return id, nil
}
