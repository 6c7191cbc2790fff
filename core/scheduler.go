package core

// Task is one cooperative unit polled by the Scheduler
type Task struct {
	Name string
	Poll func() uint8
	Next *Task
}

const (
	PollDone  = 0 // Remove the task after this pass
	PollAgain = 1 // Keep the task in the list
)

// Scheduler runs its tasks round-robin from a single execution context.
// Nothing here blocks: a pass costs one Poll call per task.
type Scheduler struct {
	head *Task
	tail *Task
	n    int
}

// Add appends a task; tasks run in insertion order
func (s *Scheduler) Add(t *Task) {
	t.Next = nil
	if s.head == nil {
		s.head = t
		s.tail = t
	} else {
		s.tail.Next = t
		s.tail = t
	}
	s.n++
}

// AddFunc wraps a plain tick function as a task that is never removed
func (s *Scheduler) AddFunc(name string, tick func()) *Task {
	t := &Task{
		Name: name,
		Poll: func() uint8 {
			tick()
			return PollAgain
		},
	}
	s.Add(t)
	return t
}

// Len returns the number of registered tasks
func (s *Scheduler) Len() int {
	return s.n
}

// RunOnce polls every task once, dropping those that return PollDone
func (s *Scheduler) RunOnce() {
	var prev *Task
	t := s.head
	for t != nil {
		next := t.Next
		if t.Poll() == PollDone {
			if prev == nil {
				s.head = next
			} else {
				prev.Next = next
			}
			if s.tail == t {
				s.tail = prev
			}
			t.Next = nil // Clear Next pointer so the task can be re-added
			s.n--
		} else {
			prev = t
		}
		t = next
	}
}
