package cli

func (c *Cli) runStatus() error {
	c.io.Println("=== Sync Status ===")
	c.io.Println()

	c.io.Printf("State: %s\n", c.service.State())
	c.io.Println()

	if pending := c.service.PendingCount(); pending > 0 {
		c.io.Printf("⚠️  Pending sync: %d operation(s) waiting to be synchronized\n", pending)
		c.io.Println("Run 'chatsync sync' to synchronize with server.")
	} else {
		c.io.Println("✓ All data synchronized with server")
	}

	return nil
}
