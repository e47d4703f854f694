package utils

func Ptr[T any](v T) *T {
	return &v
}

// Contains reports whether v is in s.
func Contains[T comparable](s []T, v T) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
