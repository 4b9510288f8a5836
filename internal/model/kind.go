package model

// Kind identifies one of the synchronized entity kinds. It is a closed
// enumeration: the store and converters switch on it exhaustively.
type Kind int

const (
	KindProject Kind = iota
	KindPerson
	KindTodoList
	KindTodoItem
)

// String returns the kind's table-friendly name.
func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindPerson:
		return "person"
	case KindTodoList:
		return "todolist"
	case KindTodoItem:
		return "todoitem"
	default:
		return "unknown"
	}
}
