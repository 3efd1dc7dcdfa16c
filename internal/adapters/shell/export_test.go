package shell

var IsWindowClosedByUser = isWindowClosedByUser

// PrepareTerminal exposes the terminal invocation built for command.
func PrepareTerminal(e *Executor, command string) (argv []string, script string, cleanup func(), err error) {
	launch, err := e.prepareTerminal(command)
	if err != nil {
		return nil, "", nil, err
	}
	return launch.argv, launch.script, launch.cleanup, nil
}
