package cli

import (
	"context"
	"fmt"
	"os"
)

// downloadDocument fetches the backend-generated document of an order and
// writes it next to the working directory. Rendering happens server-side;
// the client only moves bytes.
func (a *App) downloadDocument(ctx context.Context, orderID int) error {
	data, err := a.api.Raw(ctx, fmt.Sprintf("/api/orders/%d/document", orderID))
	if err != nil {
		return err
	}

	name := fmt.Sprintf("order-%d.pdf", orderID)
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", name, len(data))
	return nil
}
