package pass

import "fmt"

func countDetail(what string, n int) string {
	return fmt.Sprintf("%d %s", n, what)
}
