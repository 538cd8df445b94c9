package presets

// These are the YAML source documents for the shipped presets. Keeping
// them as Go string constants (rather than go:embed files) matches the
// teacher's own presets.go, which shipped its presets as an in-package
// literal rather than reading from disk.

const twoBodyStableOrbitYAML = `
name: Two-Body Stable Orbit
description: sun/planet pair from the spec's concrete scenario 1; energy drift stays under 1% over 240 ticks
config:
  gravityConstant: 1.0
  softeningEpsilon: 1e-3
  dt: 0.01
  integrator: velocityVerlet
  collisionMode: inelasticMerge
  gravitySolver: auto
bodies:
  - id: sun
    mass: 1000
    radius: 2
    position: {x: 0, y: 0}
    velocity: {x: 0, y: 0}
    label: Sun
    kind: star
  - id: planet
    mass: 1
    radius: 0.5
    position: {x: 12, y: 0}
    velocity: {x: 0, y: 9.2}
    label: Planet
    kind: planet
`

const headOnInelasticMergeYAML = `
name: Head-On Inelastic Merge
description: spec's concrete scenario 2, two equal unit-mass bodies merging on a single tick
config:
  gravityConstant: 1e-12
  dt: 0.1
  integrator: semiImplicitEuler
  collisionMode: inelasticMerge
bodies:
  - id: a
    mass: 1
    radius: 1
    position: {x: -1, y: 0}
    velocity: {x: 1, y: 0}
    label: A
  - id: b
    mass: 1
    radius: 1
    position: {x: 1, y: 0}
    velocity: {x: -1, y: 0}
    label: B
`

const elasticSymmetricCollisionYAML = `
name: Elastic Symmetric Collision
description: spec's concrete scenario 3, same geometry as the inelastic merge but velocities swap instead of merging
config:
  gravityConstant: 1e-12
  dt: 0.1
  integrator: semiImplicitEuler
  collisionMode: elastic
bodies:
  - id: a
    mass: 1
    radius: 1
    position: {x: -1, y: 0}
    velocity: {x: 1, y: 0}
    label: A
  - id: b
    mass: 1
    radius: 1
    position: {x: 1, y: 0}
    velocity: {x: -1, y: 0}
    label: B
`

const solarSystemLiteYAML = `
name: Solar System Lite
description: a central star with three orbiting planets at increasing radii
config:
  gravityConstant: 1.0
  dt: 0.005
  integrator: velocityVerlet
  collisionMode: inelasticMerge
  gravitySolver: auto
bodies:
  - id: star
    mass: 5000
    radius: 4
    position: {x: 0, y: 0}
    velocity: {x: 0, y: 0}
    label: Star
    kind: star
  - id: inner
    mass: 1
    radius: 0.4
    position: {x: 10, y: 0}
    velocity: {x: 0, y: 22.4}
    label: Inner Planet
    kind: planet
  - id: middle
    mass: 2
    radius: 0.6
    position: {x: 20, y: 0}
    velocity: {x: 0, y: 15.8}
    label: Middle Planet
    kind: planet
  - id: outer
    mass: 1.5
    radius: 0.5
    position: {x: 32, y: 0}
    velocity: {x: 0, y: 12.5}
    label: Outer Planet
    kind: planet
`

const threeBodyChaosYAML = `
name: Three-Body Chaos
description: the classic figure-eight-adjacent unstable three-body configuration
config:
  gravityConstant: 1.0
  dt: 0.002
  integrator: rk4
  collisionMode: ignore
  deterministic: true
  dtPolicy: fixed
bodies:
  - id: one
    mass: 10
    radius: 1
    position: {x: -1, y: 0}
    velocity: {x: 0.4, y: 0.6}
    label: Body One
  - id: two
    mass: 10
    radius: 1
    position: {x: 1, y: 0}
    velocity: {x: 0.4, y: -0.6}
    label: Body Two
  - id: three
    mass: 10
    radius: 1
    position: {x: 0, y: 1.5}
    velocity: {x: -0.8, y: 0}
    label: Body Three
`
