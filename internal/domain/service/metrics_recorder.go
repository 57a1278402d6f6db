package service

// OperationRecorder counts profile operations by outcome.
type OperationRecorder interface {
	ObserveProfileOperation(operation, outcome string)
}
