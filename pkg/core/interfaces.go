package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// MaterialID indexes a material in the scene-owned material table
type MaterialID int

// HitRecord contains information about a ray-object intersection.
// It is short-lived and refers to its material by index, never by pointer.
type HitRecord struct {
	T        float64    // Parameter t along the ray
	Point    Vec3       // Point of intersection
	Normal   Vec3       // Surface normal at intersection (not flipped for back faces)
	Material MaterialID // Material of the hit object
}
