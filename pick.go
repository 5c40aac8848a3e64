package tubefall

// RayCaster returns every hit along a ray, nearest first.
type RayCaster interface {
	CastRay(ray Ray) []RayHit
}

// ResolveClick casts a ray from the camera through a pixel and returns the
// pop-up it lands on. Hits are taken nearest first; a hit counts when the
// hit node or one of its ancestors is tagged TagPopUp and that tagged node
// is visible. A miss is not an error.
func ResolveClick(screenX, screenY float64, width, height int, cam *Camera, scene RayCaster) (*Model, bool) {
	if width <= 0 || height <= 0 || cam == nil || scene == nil {
		return nil, false
	}

	ndcX, ndcY := ScreenToNDC(screenX, screenY, float64(width), float64(height))
	ray := cam.Ray(ndcX, ndcY, float64(width)/float64(height))

	for _, hit := range scene.CastRay(ray) {
		target, ok := hit.Model.FindAncestor(TagPopUp)
		if !ok {
			continue
		}
		if !target.Visible {
			return nil, false
		}
		return target, true
	}
	return nil, false
}
