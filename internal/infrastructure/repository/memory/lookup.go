package memory

func (d *dataset) hasTeam(id int64) bool {
	for _, item := range d.teams {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (d *dataset) hasPlayer(id int64) bool {
	for _, item := range d.players {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (d *dataset) hasGame(id int64) bool {
	for _, item := range d.games {
		if item.ID == id {
			return true
		}
	}
	return false
}
