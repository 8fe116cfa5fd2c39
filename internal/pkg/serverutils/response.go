package serverutils

// Response is the uniform JSON envelope returned by every endpoint. The UI
// reads Success/Error instead of relying on transport status codes alone.
type Response[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, errMessage string) Response[any] {
	return Response[any]{
		Success: false,
		Code:    code,
		Message: errMessage,
		Error:   errMessage,
	}
}
