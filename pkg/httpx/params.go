package httpx

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseIntParam: целочисленный параметр пути (:poId и т.п.); ok=false, если это не int.
func ParseIntParam(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AllowedMethods: методы зарегистрированных маршрутов, шаблон которых совпадает с path.
// Сегменты вида :name совпадают с любым непустым сегментом.
func AllowedMethods(routes gin.RoutesInfo, path string) []string {
	seen := make(map[string]struct{}, len(routes))
	out := make([]string, 0, 2)
	for _, r := range routes {
		if !matchPattern(r.Path, path) {
			continue
		}
		if _, dup := seen[r.Method]; dup {
			continue
		}
		seen[r.Method] = struct{}{}
		out = append(out, r.Method)
	}
	return out
}

func matchPattern(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}
