package tangent

// Module extends a scene with behavior. Install runs once at build time;
// modules that need teardown subscribe to the scene's lifecycle topics.
type Module interface {
	Install(scene *Scene)
}

type SceneBuilder struct {
	scene    *Scene
	cfg      SceneConfig
	hasWorld bool
	modules  []Module
}

func NewSceneBuilder(name string) *SceneBuilder {
	cfg := DefaultSceneConfig()
	cfg.Name = name
	return &SceneBuilder{
		scene: &Scene{
			Name: name,
			bus:  NewEventBus(),
		},
		cfg: cfg,
	}
}

func (b *SceneBuilder) WithLogger(logger Logger) *SceneBuilder {
	b.scene.logger = logger
	return b
}

func (b *SceneBuilder) WithResolver(resolver GameObjectResolver) *SceneBuilder {
	b.scene.resolver = resolver
	return b
}

// WithWorld gives the scene a physics world with the given configuration.
// Scenes built without a world accept collision listener registrations but
// never dispatch (see CollisionModule).
func (b *SceneBuilder) WithWorld(cfg WorldConfig) *SceneBuilder {
	b.cfg.World = cfg
	b.hasWorld = true
	return b
}

func (b *SceneBuilder) UseModule(modules ...Module) *SceneBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

func (b *SceneBuilder) Build() *Scene {
	scene := b.scene
	if scene.logger == nil {
		scene.logger = NewZapLogger(scene.Name, b.cfg.Debug)
	}
	if b.hasWorld {
		scene.world = NewWorld(b.cfg.World, scene.bus, scene.logger)
	}

	for _, module := range b.modules {
		module.Install(scene)
	}

	return scene
}
