package doctor

import (
	"sync"

	"github.com/nigeyuk/serverConfig/pkg/execx"
)

// Checker provides dependency checking functionality.
type Checker struct {
	executor execx.Executor
}

// NewChecker creates a new Checker with the real command executor.
func NewChecker() *Checker {
	return &Checker{executor: execx.NewReal()}
}

// NewCheckerWithExecutor creates a new Checker with a custom executor (for testing).
func NewCheckerWithExecutor(exec execx.Executor) *Checker {
	return &Checker{executor: exec}
}

// CheckAll runs all checks and returns groups with results.
func (c *Checker) CheckAll() []CheckGroup {
	groups := GetGroups()
	result := make([]CheckGroup, len(groups))
	for i, group := range groups {
		result[i] = c.CheckGroup(group.ID)
	}
	return result
}

// CheckAllAsync runs all checks concurrently and returns groups with results.
func (c *Checker) CheckAllAsync() []CheckGroup {
	groups := GetGroups()
	result := make([]CheckGroup, len(groups))
	var wg sync.WaitGroup

	for i, group := range groups {
		wg.Add(1)
		go func(idx int, g CheckGroup) {
			defer wg.Done()
			result[idx] = c.CheckGroup(g.ID)
		}(i, group)
	}

	wg.Wait()
	return result
}

// CheckGroup runs all checks for a specific group.
func (c *Checker) CheckGroup(groupID string) CheckGroup {
	def, ok := GetGroupDefinition(groupID)
	if !ok {
		return CheckGroup{
			ID:   groupID,
			Name: "Unknown",
		}
	}

	group := CheckGroup{
		ID:          groupID,
		Name:        def.Name,
		Description: def.Description,
	}

	for _, checkID := range def.CheckIDs {
		group.Checks = append(group.Checks, c.runCheck(checkID))
	}

	return group
}

// runCheck runs a specific check by ID.
func (c *Checker) runCheck(checkID string) Check {
	switch checkID {
	case IDAptGet:
		return CheckAptGet(c.executor)
	case IDUfw:
		return CheckUfw(c.executor)
	case IDSSHD:
		return CheckSSHD(c.executor)
	case IDSSHKeygen:
		return CheckSSHKeygen(c.executor)
	case IDHostnametl:
		return CheckHostnamectl(c.executor)
	case IDAdduser:
		return CheckAdduser(c.executor)
	case IDSystemctl:
		return CheckSystemctl(c.executor)
	case IDFallocate:
		return CheckFallocate(c.executor)
	case IDSed:
		return CheckSed(c.executor)
	default:
		return Check{
			ID:      checkID,
			Name:    checkID,
			Status:  StatusError,
			Message: "unknown check",
		}
	}
}

// Summary represents an overall health summary.
type Summary struct {
	Total    int
	OK       int
	Missing  int
	Warnings int
	Errors   int
}

// GetSummary returns a summary of check results.
func (c *Checker) GetSummary(groups []CheckGroup) Summary {
	var summary Summary
	for _, group := range groups {
		for _, check := range group.Checks {
			summary.Total++
			switch check.Status {
			case StatusOK:
				summary.OK++
			case StatusMissing:
				summary.Missing++
			case StatusWarning:
				summary.Warnings++
			case StatusError:
				summary.Errors++
			}
		}
	}
	return summary
}

// HasIssues returns true if any checks have issues.
func (c *Checker) HasIssues(groups []CheckGroup) bool {
	summary := c.GetSummary(groups)
	return summary.Missing > 0 || summary.Errors > 0
}
