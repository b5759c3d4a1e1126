package storage

// Operation -
type Operation string

// operations
const (
	OperationAddToken    Operation = "addToken"
	OperationRemoveToken Operation = "removeToken"
	OperationAddImage    Operation = "addImage"
	OperationSortList    Operation = "sortList"
)

// NeedsPayload - reports whether the operation reads a payload file
func (op Operation) NeedsPayload() bool {
	return op != OperationSortList
}

// NeedsImageOptimization - operations which bring a new logo
func (op Operation) NeedsImageOptimization() bool {
	return op == OperationAddImage || op == OperationAddToken
}
