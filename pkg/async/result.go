package async

type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) Unpack() (T, error) {
	return r.Value, r.Err
}
