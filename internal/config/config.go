package config

import (
	"os"
	"strconv"
)

// Combat holds the tunable constants of the battle loop.
type Combat struct {
	StartEnergy      int `json:"startEnergy"`
	HandSize         int `json:"handSize"`
	DamageFloor      int `json:"damageFloor"`
	DefenseFactorPct int `json:"defenseFactorPct"`
	EnergyLossPct    int `json:"energyLossPct"`
	TickMS           int `json:"tickMs"`
}

type Config struct {
	HTTPAddr string `json:"-"`
	Combat   Combat `json:"combat"`
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		Combat: Combat{
			StartEnergy:      getenvInt("START_ENERGY", 700),
			HandSize:         getenvInt("HAND_SIZE", 4),
			DamageFloor:      getenvInt("DAMAGE_FLOOR", 2),
			DefenseFactorPct: getenvInt("DEFENSE_FACTOR_PCT", 80),
			EnergyLossPct:    getenvInt("ENERGY_LOSS_PCT", 80),
			TickMS:           getenvInt("TICK_MS", 500),
		},
	}
}
