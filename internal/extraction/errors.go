package extraction

type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// MalformedResultError means the model's JSON parsed but could not be
// normalized into the expected shape. Not retryable; it usually indicates
// prompt/schema drift and is logged loudly.
type MalformedResultError struct {
	Reason string
}

func (e *MalformedResultError) Error() string {
	return "malformed extraction result: " + e.Reason
}
