// Package either provides the two-variant result type returned by application
// services. Left carries an operation specific failure kind, Right the value.
//
// Example:
//
//	res, err := dnoService.CreateDNO(ctx, "EDP", "Norte")
//	if err != nil {
//	    return err // fatal, the transaction was rolled back
//	}
//	if kind, ok := res.Left(); ok {
//	    switch kind {
//	    case services.DNOCreationInvalidName:
//	    case services.DNOCreationAlreadyExists:
//	    }
//	}
//	dno, _ := res.Right()
package either

// Either holds exactly one of a Left or a Right value. The zero value is a Left
// holding the zero value of L.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left builds a failed result.
func Left[L, R any](value L) Either[L, R] {
	return Either[L, R]{left: value}
}

// Right builds a successful result.
func Right[L, R any](value R) Either[L, R] {
	return Either[L, R]{right: value, isRight: true}
}

// IsLeft reports whether the result is a failure.
func (e Either[L, R]) IsLeft() bool {
	return !e.isRight
}

// IsRight reports whether the result is a success.
func (e Either[L, R]) IsRight() bool {
	return e.isRight
}

// Left returns the failure value and true when the result is a Left.
func (e Either[L, R]) Left() (L, bool) {
	return e.left, !e.isRight
}

// Right returns the success value and true when the result is a Right.
func (e Either[L, R]) Right() (R, bool) {
	return e.right, e.isRight
}

// Fold collapses the result by applying onLeft or onRight.
func Fold[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// Map transforms the Right value and keeps a Left untouched.
func Map[L, R, T any](e Either[L, R], f func(R) T) Either[L, T] {
	if e.isRight {
		return Right[L](f(e.right))
	}
	return Left[L, T](e.left)
}
