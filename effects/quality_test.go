package effects

import "testing"

func TestQualityStepsDownAfterSustainedSlowFrames(t *testing.T) {
	q := newQuality(1.0/60.0, maxQualityLevel)
	slow := (1.0 / 60.0) * 1.3 // 30% over target, triggers the 25% threshold
	for i := 0; i < stepDownFrames; i++ {
		q.record(slow)
	}
	if q.level != maxQualityLevel-1 {
		t.Fatalf("expected level to step down once to %d, got %d", maxQualityLevel-1, q.level)
	}
}

func TestQualityDoesNotStepDownBeforeThresholdFrameCount(t *testing.T) {
	q := newQuality(1.0/60.0, maxQualityLevel)
	slow := (1.0 / 60.0) * 1.3
	for i := 0; i < stepDownFrames-1; i++ {
		q.record(slow)
	}
	if q.level != maxQualityLevel {
		t.Fatalf("expected no step down yet, got level %d", q.level)
	}
}

func TestQualityStepsUpAfterSustainedFastFrames(t *testing.T) {
	q := newQuality(1.0/60.0, 0)
	fast := (1.0 / 60.0) * 0.5
	for i := 0; i < stepUpFrames; i++ {
		q.record(fast)
	}
	if q.level != 1 {
		t.Fatalf("expected level to step up once to 1, got %d", q.level)
	}
}

func TestQualityNeverStepsAboveUltra(t *testing.T) {
	q := newQuality(1.0/60.0, maxQualityLevel)
	fast := (1.0 / 60.0) * 0.1
	for i := 0; i < stepUpFrames*3; i++ {
		q.record(fast)
	}
	if q.level != maxQualityLevel {
		t.Fatalf("expected level to stay at max %d, got %d", maxQualityLevel, q.level)
	}
}

func TestQualityFactorBounds(t *testing.T) {
	for level := 0; level <= maxQualityLevel; level++ {
		q := newQuality(1.0/60.0, level)
		if q.factor() < 0.3 || q.factor() > 1.0 {
			t.Fatalf("quality factor %f out of [0.3, 1.0] at level %d", q.factor(), level)
		}
	}
}
