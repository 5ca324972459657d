package scout

// Shared fixtures for the package tests.

// testPlayer builds a pose-free observation whose anchor position is the
// bbox centre at (x, y).
func testPlayer(id int64, team Team, x, y float64) PlayerObservation {
	return PlayerObservation{
		PlayerID: id,
		Team:     team,
		BBox:     BBox{X1: x - 20, Y1: y - 60, X2: x + 20, Y2: y + 60},
	}
}

// testStanceKeypoints builds a full 18-joint keypoint list describing a
// textbook defensive stance centred on (x, y): wide feet, deep knee bend,
// upright torso, extended arms.
func testStanceKeypoints(x, y float64) []Keypoint {
	kp := func(px, py float64) Keypoint { return Keypoint{X: px, Y: py, Confidence: 0.9} }
	kps := make([]Keypoint, KeypointCount)
	kps[KPNose] = kp(x, y-80)
	kps[KPNeck] = kp(x, y-60)
	kps[KPRightShoulder] = kp(x-15, y-50)
	kps[KPRightElbow] = kp(x-70, y-50)
	kps[KPRightWrist] = kp(x-125, y-50)
	kps[KPLeftShoulder] = kp(x+15, y-50)
	kps[KPLeftElbow] = kp(x+70, y-50)
	kps[KPLeftWrist] = kp(x+125, y-50)
	kps[KPRightHip] = kp(x-10, y)
	kps[KPRightKnee] = kp(x-10, y+25)
	kps[KPRightAnkle] = kp(x-30, y+50)
	kps[KPLeftHip] = kp(x+10, y)
	kps[KPLeftKnee] = kp(x+10, y+25)
	kps[KPLeftAnkle] = kp(x+30, y+50)
	kps[KPRightEye] = kp(x-5, y-85)
	kps[KPLeftEye] = kp(x+5, y-85)
	kps[KPRightEar] = kp(x-8, y-82)
	kps[KPLeftEar] = kp(x+8, y-82)
	return kps
}

// testDefenderWithPose builds a defender in a good stance at (x, y).
func testDefenderWithPose(id int64, x, y float64) PlayerObservation {
	p := testPlayer(id, TeamDefense, x, y)
	p.Keypoints = testStanceKeypoints(x, y)
	return p
}

// rectLines returns the four boundary segments of an axis-aligned
// rectangle, the minimal court line evidence a calibration fit needs.
func rectLines(x1, y1, x2, y2 float64) []LineSegment {
	return []LineSegment{
		{P1: Point{x1, y1}, P2: Point{x2, y1}},
		{P1: Point{x2, y1}, P2: Point{x2, y2}},
		{P1: Point{x2, y2}, P2: Point{x1, y2}},
		{P1: Point{x1, y2}, P2: Point{x1, y1}},
	}
}

// arcSamples builds a rise-then-fall ball trajectory whose descent ends
// near the default-calibration basket point (960, 216) on a 1920x1080
// frame. The apex sits at startFrame+20.
func arcSamples(startFrame int) []BallSample {
	samples := make([]BallSample, 0, 30)
	for i := 0; i < 30; i++ {
		var y float64
		if i <= 20 {
			y = 500 - 15.5*float64(i) // rise to y=190
		} else {
			y = 190 + 6.67*float64(i-20) // fall to y=250
		}
		samples = append(samples, BallSample{
			FrameIndex: startFrame + i,
			Position:   Point{X: 900 + 2*float64(i), Y: y},
		})
	}
	return samples
}
