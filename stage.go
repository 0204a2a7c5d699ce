package carousel

import (
	"fmt"
	"image"
	"math"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

const (
	defaultContainerWidth  = 600
	defaultContainerHeight = 300
	defaultCardWidth       = 200
	defaultCardHeight      = 270
	defaultScrollGap       = 8 // pixels between cards in continuous layout
)

// StageConfig controls how a Stage lays out and animates its cards.
// Zero fields take their defaults.
type StageConfig struct {
	ContainerWidth  float64
	ContainerHeight float64
	CardWidth       float64
	CardHeight      float64

	// Transition is how long a card takes to reach a new transform, in
	// seconds. Negative disables the transition.
	Transition float32
	Ease       ease.TweenFunc

	Tilt TiltConfig
	// TiltLerp is the fraction of the remaining distance the drawn tilt
	// covers each frame. 1 follows the pointer exactly.
	TiltLerp float64

	ShowCounter bool
	ShowTitles  bool
	ClearColor  Color

	// Font renders the title and counter. Nil uses the debug font.
	Font       *Font
	LabelColor Color
}

func (c StageConfig) withDefaults() StageConfig {
	if c.ContainerWidth <= 0 {
		c.ContainerWidth = defaultContainerWidth
	}
	if c.ContainerHeight <= 0 {
		c.ContainerHeight = defaultContainerHeight
	}
	if c.CardWidth <= 0 {
		c.CardWidth = defaultCardWidth
	}
	if c.CardHeight <= 0 {
		c.CardHeight = defaultCardHeight
	}
	if c.Transition == 0 {
		c.Transition = defaultTransition
	}
	if c.Ease == nil {
		c.Ease = ease.OutCubic
	}
	if c.LabelColor.A <= 0 {
		c.LabelColor = Color{R: 0.1, G: 0.1, B: 0.12, A: 1}
	}
	if c.TiltLerp <= 0 || c.TiltLerp > 1 {
		c.TiltLerp = 1
	}
	c.Tilt = c.Tilt.withDefaults()
	return c
}

// card is the presentation state of one slide.
type card struct {
	index int
	image *ebiten.Image

	visible  bool
	position float64   // relative position in slide units
	target   Transform // latest mapper output
	shown    Transform // what is drawn; eased toward target
	tween    *TweenGroup

	tilt      *TiltAnimator
	tiltTo    Tilt // latest published by the tilt loop
	tiltShown Tilt
	bounds    Rect // last drawn bounds, for hit testing
}

// Stage hosts an Engine inside an Ebitengine game. It reads mouse and touch
// input, eases every card toward its transform, runs the per-card tilt
// loops and draws the result. Stage implements ebiten.Game.
type Stage struct {
	engine *Engine
	scroll *EngineScroll // non-nil for the continuous policy
	cfg    StageConfig
	cards  []*card
	frames FrameScheduler

	screenW, screenH float64

	descBuf  []SlideTransform
	drawBuf  []*card
	frame    uint64
	lastDT   float64
	epoch    time.Time
	clock    func() float64
	debug    bool
	closed   bool
	updateFn func() error

	// Input state
	pointer      pointerState
	touchID      ebiten.TouchID
	touchActive  bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent
	testRunner   *TestRunner

	// Screenshots
	ScreenshotDir   string
	screenshotQueue []string
}

// NewStage creates a stage for e. images holds one decoded image per slide
// in slide order; missing or nil entries draw as blank cards.
func NewStage(e *Engine, images []image.Image, cfg StageConfig) *Stage {
	cfg = cfg.withDefaults()
	s := &Stage{
		engine:        e,
		cfg:           cfg,
		cards:         make([]*card, e.Len()),
		screenW:       cfg.ContainerWidth,
		screenH:       cfg.ContainerHeight,
		epoch:         time.Now(),
		ScreenshotDir: "screenshots",
	}
	if e.Config().Policy == PolicyContinuous {
		s.scroll = NewEngineScroll(e)
	}
	converted := map[image.Image]*ebiten.Image{}
	for i := range s.cards {
		c := &card{index: i}
		if i < len(images) && images[i] != nil {
			img := images[i]
			if eimg, ok := converted[img]; ok {
				c.image = eimg
			} else {
				c.image = ebiten.NewImageFromImage(img)
				converted[img] = c.image
			}
		}
		s.cards[i] = c
	}
	s.sync(0)
	return s
}

// Engine returns the engine driven by this stage.
func (s *Stage) Engine() *Engine { return s.engine }

// Frames returns the stage's frame scheduler.
func (s *Stage) Frames() *FrameScheduler { return &s.frames }

// SetUpdateFunc registers a callback invoked at the end of every Update.
func (s *Stage) SetUpdateFunc(fn func() error) { s.updateFn = fn }

// SetDebugMode enables per-frame diagnostics on stderr.
func (s *Stage) SetDebugMode(enabled bool) { s.debug = enabled }

// Container returns the container rectangle centered in the current layout.
// It is recomputed on every call because the window can be resized between
// frames.
func (s *Stage) Container() Rect {
	w, h := s.cfg.ContainerWidth, s.cfg.ContainerHeight
	return Rect{X: (s.screenW - w) / 2, Y: (s.screenH - h) / 2, Width: w, Height: h}
}

// now returns the input clock in milliseconds.
func (s *Stage) now() float64 {
	if s.clock != nil {
		return s.clock()
	}
	return float64(time.Since(s.epoch)) / float64(time.Millisecond)
}

// Update implements ebiten.Game.
func (s *Stage) Update() error {
	if s.closed {
		return ebiten.Termination
	}
	dt := 1.0 / 60
	if tps := ebiten.TPS(); tps > 0 {
		dt = 1.0 / float64(tps)
	}
	s.lastDT = dt

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.sync(dt)
	s.frames.Tick(dt)
	s.frame++

	if s.updateFn != nil {
		return s.updateFn()
	}
	return nil
}

// Layout implements ebiten.Game.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.screenW, s.screenH = float64(outsideWidth), float64(outsideHeight)
	return outsideWidth, outsideHeight
}

// Close stops every tilt loop. The next Update ends the game.
func (s *Stage) Close() {
	for _, c := range s.cards {
		s.stopTilt(c)
	}
	s.closed = true
}

// sync recomputes every card's target from the engine and advances the
// transition tweens by dt seconds.
func (s *Stage) sync(dt float64) {
	if s.scroll != nil {
		s.descBuf = MapScroll(s.scroll, s.engine.Slides(), s.engine.Mapper(), 0, s.descBuf[:0])
	} else {
		s.descBuf = s.engine.AppendDescriptors(s.descBuf[:0])
	}

	for _, c := range s.cards {
		c.position = s.engine.Position(c.index)
		c.visible = false
	}
	for _, d := range s.descBuf {
		c := s.cards[d.Index]
		c.visible = s.engine.Visible(c.position)
		if !c.visible {
			continue
		}
		if c.target != d.Transform || c.tween == nil {
			entering := c.tween == nil
			c.target = d.Transform
			dur := s.cfg.Transition
			if entering {
				dur = 0
			}
			c.tween = tweenCard(c, d.Transform, dur, s.cfg.Ease)
		}
	}

	for _, c := range s.cards {
		if !c.visible {
			// Re-entering the window starts from the target, not a stale pose.
			c.tween = nil
			s.stopTilt(c)
			continue
		}
		c.tween.Update(float32(dt))

		if math.Abs(c.position) <= s.cfg.Tilt.Radius {
			s.startTilt(c)
		} else {
			s.stopTilt(c)
		}
		lerp := s.cfg.TiltLerp
		c.tiltShown.RotateX += (c.tiltTo.RotateX - c.tiltShown.RotateX) * lerp
		c.tiltShown.RotateY += (c.tiltTo.RotateY - c.tiltShown.RotateY) * lerp
		c.tiltShown.ParallaxX += (c.tiltTo.ParallaxX - c.tiltShown.ParallaxX) * lerp
		c.tiltShown.ParallaxY += (c.tiltTo.ParallaxY - c.tiltShown.ParallaxY) * lerp
		c.bounds = transformBounds(s.cardMatrix(c), s.cfg.CardWidth, s.cfg.CardHeight)
	}
}

func (s *Stage) startTilt(c *card) {
	if c.tilt != nil {
		return
	}
	c.tilt = NewTiltAnimator(&s.frames, func() (Rect, bool) {
		if !c.visible {
			return Rect{}, false
		}
		return c.bounds, true
	}, func(t Tilt) {
		c.tiltTo = t
	}, s.cfg.Tilt)
	c.tilt.Start()
}

func (s *Stage) stopTilt(c *card) {
	if c.tilt == nil {
		return
	}
	c.tilt.Stop()
	c.tilt = nil
	c.tiltTo = Tilt{}
	c.tiltShown = Tilt{}
}

// cardMatrix returns the card-local (CardWidth × CardHeight) to screen
// transform for c.
func (s *Stage) cardMatrix(c *card) [6]float64 {
	cont := s.Container()
	cx := cont.X + cont.Width/2
	cy := cont.Y + cont.Height/2

	pose := cardPose{
		ScaleX:   c.shown.Scale,
		ScaleY:   c.shown.Scale,
		Rotation: degToRad(c.shown.RotationDegrees),
		PivotX:   s.cfg.CardWidth / 2,
		PivotY:   s.cfg.CardHeight / 2,
		Y:        cy,
	}
	if s.scroll != nil {
		pose.X = cx + c.position*(s.cfg.CardWidth+defaultScrollGap)
		// Small-angle stand-in for the 3D tilt: shear the card.
		pose.SkewX = degToRad(c.tiltShown.RotateY)
		pose.SkewY = degToRad(c.tiltShown.RotateX)
	} else {
		pose.X = cx + c.shown.TranslateXPercent/100*s.cfg.CardWidth
		if c.position == 0 {
			pose.X += c.tiltShown.ParallaxX
			pose.Y += c.tiltShown.ParallaxY
		}
	}
	return computeCardTransform(pose)
}

// hitCard returns the topmost visible card containing (x, y), or nil.
func (s *Stage) hitCard(x, y float64) *card {
	var hit *card
	for _, c := range s.cards {
		if !c.visible || !c.bounds.Contains(x, y) {
			continue
		}
		if hit == nil || c.shown.ZIndex > hit.shown.ZIndex {
			hit = c
		}
	}
	return hit
}

// Draw implements ebiten.Game.
func (s *Stage) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	cc := s.cfg.ClearColor
	if cc.A > 0 {
		screen.Fill(cc.toRGBA())
	}

	s.drawBuf = s.drawBuf[:0]
	for _, c := range s.cards {
		if c.visible {
			s.drawBuf = append(s.drawBuf, c)
		}
	}
	sort.SliceStable(s.drawBuf, func(i, j int) bool {
		return s.drawBuf[i].shown.ZIndex < s.drawBuf[j].shown.ZIndex
	})
	for _, c := range s.drawBuf {
		s.drawCard(screen, c)
	}

	if s.cfg.ShowTitles {
		active := s.engine.ActiveIndex()
		title := s.engine.Slides()[active].Title
		cont := s.Container()
		s.drawLabel(screen, title, cont.X, cont.Y, false)
	}
	if s.cfg.ShowCounter {
		cont := s.Container()
		label := fmt.Sprintf("Slide %d of %d", s.engine.ActiveIndex()+1, s.engine.Len())
		s.drawLabel(screen, label, cont.X+cont.Width/2, cont.Y+cont.Height+4, true)
	}

	if s.debug {
		stats.drawTime = time.Since(t0)
		stats.drawnCards = len(s.drawBuf)
		stats.tiltLoops = s.frames.Pending()
		stats.state = s.engine.State()
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

func (s *Stage) drawCard(screen *ebiten.Image, c *card) {
	img := c.image
	if img == nil {
		img = blankCard()
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	fit := [6]float64{s.cfg.CardWidth / iw, 0, 0, s.cfg.CardHeight / ih, 0, 0}
	m := multiplyAffine(s.cardMatrix(c), fit)

	var op ebiten.DrawImageOptions
	op.GeoM = geoM(m)
	op.ColorScale.ScaleAlpha(float32(c.shown.Opacity))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, &op)
}

var blankCardImage *ebiten.Image

// blankCard returns a lazily created white image for slides without one.
func blankCard() *ebiten.Image {
	if blankCardImage == nil {
		blankCardImage = ebiten.NewImage(1, 1)
		blankCardImage.Fill(Color{1, 1, 1, 1}.toRGBA())
	}
	return blankCardImage
}
