package waterflow

// Command is returned by input handlers and executed by the Application once
// the handler returns. A nil Command does nothing.
type Command any

// RedrawCommand redraws the screen after the event.
type RedrawCommand struct{}

// QuitCommand stops the Application.
type QuitCommand struct{}

// ConsumeEventCommand marks an event as handled without asking for a
// redraw. Containers stop offering the event to other children.
type ConsumeEventCommand struct{}

// SetFocusCommand moves the keyboard focus to Target.
type SetFocusCommand struct {
	Target Primitive
}

// BatchCommand executes its commands in order.
type BatchCommand []Command

// AppendCommand combines current and next into one command. Batches are
// flattened and nil commands dropped.
func AppendCommand(current, next Command) Command {
	switch {
	case next == nil:
		return current
	case current == nil:
		return next
	}

	var batch BatchCommand
	for _, cmd := range []Command{current, next} {
		if nested, ok := cmd.(BatchCommand); ok {
			batch = append(batch, nested...)
		} else {
			batch = append(batch, cmd)
		}
	}
	return batch
}
