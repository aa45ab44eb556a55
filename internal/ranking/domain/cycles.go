package domain

import "sort"

// CyclicSet holds the ids of tasks that sit on at least one circular dependency chain.
type CyclicSet map[TaskID]struct{}

// Contains reports whether id is part of a cycle.
func (s CyclicSet) Contains(id TaskID) bool {
	_, ok := s[id]
	return ok
}

// ContainsTask reports whether the task is part of a cycle. Tasks without an id never are.
func (s CyclicSet) ContainsTask(t Task) bool {
	return t.ID != nil && s.Contains(*t.ID)
}

// IDs returns the members in ascending order.
func (s CyclicSet) IDs() []TaskID {
	ids := make([]TaskID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type visitColor uint8

const (
	colorWhite visitColor = iota // not reached yet
	colorGrey                    // on the traversal stack, component still open
	colorBlack                   // component closed
)

type visitFrame struct {
	id   TaskID
	next int
}

// DetectCycles returns every task id that lies on a directed cycle, following edges from a task
// to each of its dependencies. Dependencies on unknown ids are dead ends; a task that depends
// on itself is cyclic.
//
// The walk is an iterative depth-first search with three-colour marking. A back edge to a grey
// node closes a loop; low-links carry that discovery up the stack so every node of the loop is
// reported, whichever root the walk started from.
func DetectCycles(tasks []Task) CyclicSet {
	idx := indexDependencies(tasks)

	var (
		color  = make(map[TaskID]visitColor, len(idx.order))
		order  = make(map[TaskID]int, len(idx.order))
		low    = make(map[TaskID]int, len(idx.order))
		open   []TaskID
		cyclic = make(CyclicSet)
		clock  int
	)

	enter := func(id TaskID) {
		color[id] = colorGrey
		order[id] = clock
		low[id] = clock
		clock++
		open = append(open, id)
	}

	for _, root := range idx.order {
		if color[root] != colorWhite {
			continue
		}

		enter(root)
		stack := []visitFrame{{id: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := idx.edges[top.id]

			if top.next < len(deps) {
				dep := deps[top.next]
				top.next++
				if !idx.known(dep) {
					continue
				}
				switch color[dep] {
				case colorWhite:
					enter(dep)
					stack = append(stack, visitFrame{id: dep})
				case colorGrey:
					if dep == top.id {
						cyclic[dep] = struct{}{}
					}
					low[top.id] = min(low[top.id], order[dep])
				}
				continue
			}

			id := top.id
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := stack[len(stack)-1].id
				low[parent] = min(low[parent], low[id])
			}

			if low[id] != order[id] {
				continue
			}

			// id roots a closed component: pop it off the open list.
			start := len(open) - 1
			for open[start] != id {
				start--
			}
			component := open[start:]
			open = open[:start]
			for _, member := range component {
				color[member] = colorBlack
				if len(component) > 1 {
					cyclic[member] = struct{}{}
				}
			}
		}
	}

	return cyclic
}
