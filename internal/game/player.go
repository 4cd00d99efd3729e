package game

import "image/color"

const (
	// PlayerMaxHealth is the player's fixed maximum health.
	PlayerMaxHealth = 250
	// PlayerWalkSpeed is the player's normal movement speed.
	PlayerWalkSpeed = 65.0
	// PlayerRunSpeed is the player's sprinting speed.
	PlayerRunSpeed = 100.0
)

var (
	playerFullHealthColor = color.RGBA{R: 0, G: 255, B: 255, A: 255} // cyan
	playerLowHealthColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}   // red
)

// Player is the actor under the user's control.
type Player struct {
	Actor
	pointCount int
}

// NewPlayer constructs a player at full health and zero points at p.
func NewPlayer(p Position) *Player {
	player := &Player{}
	player.Actor = newActor(playerFullHealthColor, p, PlayerMaxHealth, player.updateColor)
	return player
}

// MaxHealth returns the player's fixed maximum health.
func (p *Player) MaxHealth() int { return PlayerMaxHealth }

// PointCount returns the player's current point total.
func (p *Player) PointCount() int { return p.pointCount }

// ChangePoints adjusts the player's point total by delta, which may be
// negative.
func (p *Player) ChangePoints(delta int) { p.pointCount += delta }

// ChangeHealth overrides Actor.ChangeHealth to clamp at MaxHealth.
func (p *Player) ChangeHealth(delta int) {
	p.health += delta
	if p.health > PlayerMaxHealth {
		p.health = PlayerMaxHealth
	}
	p.col = p.updateColor(p.health)
}

func (p *Player) updateColor(health int) color.RGBA {
	t := float64(health) / float64(PlayerMaxHealth)
	return lerpColor(playerLowHealthColor, playerFullHealthColor, t)
}
