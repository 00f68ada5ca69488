package web

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// bind decodes a JSON or form body into dst.
func bind(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// splitList flattens values that may themselves be comma separated, as
// sent by forms and query strings.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
