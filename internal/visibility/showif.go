package visibility

// Container is the element whose visibility is controlled.
type Container struct {
	visible bool
}

func (c *Container) Show() { c.visible = true }

func (c *Container) Hide() { c.visible = false }

func (c *Container) Visible() bool { return c.visible }

// ShowIf binds predicate results to a container and its revealer.
type ShowIf struct {
	container *Container
	revealer  *Revealer
}

// InstallShowIf prepares container for the evaluator's mode. Unconditional
// elements are shown and revealed at once. Conditional ones start hidden
// and are hidden again whenever a hide animation completes.
func InstallShowIf(container *Container, revealer *Revealer, mode Mode) *ShowIf {
	s := &ShowIf{container: container, revealer: revealer}
	if mode == Unconditional {
		container.Show()
		revealer.reveal = true
		revealer.finish()
		return s
	}
	container.Hide()
	revealer.ConnectChildRevealedNotify(func() {
		if !revealer.RevealsChild() {
			container.Hide()
		}
	})
	return s
}

// Apply handles one predicate result. The container is shown immediately
// on true; on false it stays until the revealer has finished hiding.
func (s *ShowIf) Apply(visible bool) {
	if visible {
		s.container.Show()
	}
	s.revealer.SetRevealChild(visible)
}
