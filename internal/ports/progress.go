package ports

// Progress receives notifications around each measured command.
type Progress interface {
	Start(command string)
	Done(command string, err error)
}
