package layout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// FormatShelfCode builds the A{aisle}-B{bay}-L{level} code of a shelf.
func FormatShelfCode(aisle, bay, level int) string {
	return fmt.Sprintf("A%d-B%d-L%d", aisle, bay, level)
}

// ParseShelfCode reverses FormatShelfCode.
func ParseShelfCode(code string) (aisle, bay, level int, err error) {
	parts := strings.Split(strings.TrimSpace(code), "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("shelf code %q: want A<n>-B<n>-L<n>", code)
	}
	vals := make([]int, 3)
	for i, prefix := range []string{"A", "B", "L"} {
		if !strings.HasPrefix(strings.ToUpper(parts[i]), prefix) {
			return 0, 0, 0, fmt.Errorf("shelf code %q: segment %d must start with %s", code, i+1, prefix)
		}
		n, convErr := strconv.Atoi(parts[i][1:])
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("shelf code %q: %w", code, convErr)
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], nil
}

// SortShelves orders shelves by aisle, bay and level, the order labels and
// schedules are printed in.
func SortShelves(shelves []models.Shelf) {
	sort.SliceStable(shelves, func(i, j int) bool {
		a, b := shelves[i], shelves[j]
		if a.AisleNum != b.AisleNum {
			return a.AisleNum < b.AisleNum
		}
		if a.BayNum != b.BayNum {
			return a.BayNum < b.BayNum
		}
		if a.LevelNum != b.LevelNum {
			return a.LevelNum < b.LevelNum
		}
		return a.ShelfCode < b.ShelfCode
	})
}
