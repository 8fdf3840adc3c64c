package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func approx(a, b float32) bool {
	return math32.Abs(a-b) <= eps
}

func approxVec3(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestIdentity(t *testing.T) {
	m := Identity()
	for i := 0; i < 16; i++ {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if m[i] != want {
			t.Errorf("Identity[%d]: got %v, want %v", i, m[i], want)
		}
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I: got %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * M: got %v, want %v", got, m)
	}
}

func TestTranslateAndScale(t *testing.T) {
	p := Vec3{1, 2, 3}

	if got := Translate(Vec3{10, 20, 30}).TransformPoint(p); got != (Vec3{11, 22, 33}) {
		t.Errorf("Translate: got %v, want (11, 22, 33)", got)
	}
	if got := Scale(Vec3{2, 2, 2}).TransformPoint(p); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale: got %v, want (2, 4, 6)", got)
	}
	if got := Translate(Vec3{10, 20, 30}).TransformDirection(p); got != p {
		t.Errorf("TransformDirection should ignore translation: got %v", got)
	}
}

func TestRotationsMatchReference(t *testing.T) {
	angles := []float32{0, 0.3, -1.2, math32.Pi / 2, 2.5}
	for _, a := range angles {
		if got, want := RotateX(a), Mat4(mgl32.HomogRotate3DX(a)); !got.ApproxEqual(want, eps) {
			t.Errorf("RotateX(%v): got %v, want %v", a, got, want)
		}
		if got, want := RotateY(a), Mat4(mgl32.HomogRotate3DY(a)); !got.ApproxEqual(want, eps) {
			t.Errorf("RotateY(%v): got %v, want %v", a, got, want)
		}
		if got, want := RotateZ(a), Mat4(mgl32.HomogRotate3DZ(a)); !got.ApproxEqual(want, eps) {
			t.Errorf("RotateZ(%v): got %v, want %v", a, got, want)
		}
	}
}

func TestRotateY90(t *testing.T) {
	got := RotateY(math32.Pi / 2).TransformPoint(Vec3{1, 0, 0})
	if !approxVec3(got, Vec3{0, 0, -1}) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
	// Positive yaw turns forward towards +X.
	got = RotateY(math32.Pi / 2).TransformDirection(Vec3Forward)
	if !approxVec3(got, Vec3Right) {
		t.Errorf("RotateY 90 forward: got %v, want +X", got)
	}
}

func TestMulMatchesReference(t *testing.T) {
	a := Translate(Vec3{1, -2, 3}).Mul(RotateX(0.4))
	b := Scale(Vec3{2, 3, 4}).Mul(RotateZ(-0.7))
	want := mgl32.Mat4(a).Mul4(mgl32.Mat4(b))
	if got := a.Mul(b); !got.ApproxEqual(Mat4(want), eps) {
		t.Errorf("Mul: got %v, want %v", got, want)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(Vec3{1, 2, 3}).Mul(RotatePitchYawRoll(0.1, 0.2, 0.3))
	if got, want := m.Transpose(), Mat4(mgl32.Mat4(m).Transpose()); got != want {
		t.Errorf("Transpose: got %v, want %v", got, want)
	}
	if m.Transpose().Transpose() != m {
		t.Error("Transpose twice should return the original matrix")
	}
}

func TestInverse(t *testing.T) {
	m := Translate(Vec3{4, 5, 6}).Mul(RotatePitchYawRoll(0.5, -0.25, 1)).Mul(Scale(Vec3{2, 1, 0.5}))
	if got := m.Mul(m.Inverse()); !got.ApproxEqual(Identity(), eps) {
		t.Errorf("M * M^-1: got %v, want identity", got)
	}
	if got := (Mat4{}).Inverse(); got != Identity() {
		t.Errorf("singular inverse: got %v, want identity", got)
	}
}

func TestRotatePitchYawRollOrder(t *testing.T) {
	pitch, yaw, roll := float32(0.3), float32(-0.8), float32(1.1)
	want := mgl32.HomogRotate3DY(yaw).Mul4(mgl32.HomogRotate3DX(pitch)).Mul4(mgl32.HomogRotate3DZ(roll))
	if got := RotatePitchYawRoll(pitch, yaw, roll); !got.ApproxEqual(Mat4(want), eps) {
		t.Errorf("RotatePitchYawRoll: got %v, want %v", got, want)
	}
}

func TestLookToLH(t *testing.T) {
	eye := Vec3{1, 2, -5}
	dir := Vec3{0, 0, 3}
	view := LookToLH(eye, dir, Vec3Up)

	if got := view.TransformPoint(eye); !approxVec3(got, Vec3{}) {
		t.Errorf("eye should map to origin, got %v", got)
	}
	if got := view.TransformPoint(eye.Add(dir)); !approxVec3(got, Vec3{0, 0, 3}) {
		t.Errorf("point ahead should map to +Z, got %v", got)
	}
	if got := view.TransformPoint(eye.Add(Vec3Right)); !approxVec3(got, Vec3{1, 0, 0}) {
		t.Errorf("point to the right should map to +X, got %v", got)
	}
}

func TestPerspectiveFovLHDepthRange(t *testing.T) {
	near, far := float32(0.5), float32(50)
	p := PerspectiveFovLH(math32.Pi/3, 16.0/9.0, near, far)

	if got := p.TransformPoint(Vec3{0, 0, near}); !approx(got.Z, -1) {
		t.Errorf("near plane depth: got %v, want -1", got.Z)
	}
	if got := p.TransformPoint(Vec3{0, 0, far}); !approx(got.Z, 1) {
		t.Errorf("far plane depth: got %v, want 1", got.Z)
	}
	// Top edge of the frustum at depth 1 lands on y = 1.
	top := math32.Tan(math32.Pi / 6)
	if got := p.TransformPoint(Vec3{0, top, 1}); !approx(got.Y, 1) {
		t.Errorf("frustum top: got %v, want 1", got.Y)
	}
}

func TestOrthographicLH(t *testing.T) {
	o := OrthographicLH(10, 5, 1, 11)
	if got := o.TransformPoint(Vec3{5, 2.5, 1}); !approxVec3(got, Vec3{1, 1, -1}) {
		t.Errorf("near corner: got %v, want (1, 1, -1)", got)
	}
	if got := o.TransformPoint(Vec3{-5, -2.5, 11}); !approxVec3(got, Vec3{-1, -1, 1}) {
		t.Errorf("far corner: got %v, want (-1, -1, 1)", got)
	}
}
