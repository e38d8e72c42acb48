package astimousing

// Mouser represents an object capable of interacting with a mouse
type Mouser interface {
	ClickLeft(double bool) error
	Move(x, y int) error
}
