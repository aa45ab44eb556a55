package domain

// DependencyWeights maps a task id to the number of tasks that list it as a dependency.
type DependencyWeights map[TaskID]int

// BlocksCount returns how many tasks depend on id. Unknown ids block nothing.
func (w DependencyWeights) BlocksCount(id TaskID) int {
	return w[id]
}

// Total returns the number of counted dependency edges.
func (w DependencyWeights) Total() int {
	total := 0
	for _, n := range w {
		total += n
	}
	return total
}

// BuildDependencyWeights counts, for every known task id, how many tasks depend on it.
// References to ids outside the task set are ignored; duplicates count once per entry.
func BuildDependencyWeights(tasks []Task) DependencyWeights {
	weights := make(DependencyWeights, len(tasks))
	for _, t := range tasks {
		if t.ID != nil {
			weights[*t.ID] = 0
		}
	}

	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if _, ok := weights[dep]; ok {
				weights[dep]++
			}
		}
	}

	return weights
}

// dependencyIndex maps each known id to its declared dependencies.
// Ids keep their first-seen order; when ids repeat, the last task's dependencies win.
type dependencyIndex struct {
	order []TaskID
	edges map[TaskID][]TaskID
}

func indexDependencies(tasks []Task) dependencyIndex {
	idx := dependencyIndex{
		order: make([]TaskID, 0, len(tasks)),
		edges: make(map[TaskID][]TaskID, len(tasks)),
	}
	for _, t := range tasks {
		if t.ID == nil {
			continue
		}
		if _, seen := idx.edges[*t.ID]; !seen {
			idx.order = append(idx.order, *t.ID)
		}
		idx.edges[*t.ID] = t.Dependencies
	}
	return idx
}

func (idx dependencyIndex) known(id TaskID) bool {
	_, ok := idx.edges[id]
	return ok
}
