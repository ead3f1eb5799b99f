package session

// Record is one committed move as it travels between peers.
type Record struct {
	Ply  int    `json:"ply"`
	Side string `json:"side"`
	Move string `json:"move"`
	FEN  string `json:"fen"` // position after the move
}

// Transport carries locally played moves to the other peer.
type Transport interface {
	Send(r Record) error
}

// Observer is told about peers coming and going and about every committed move.
type Observer interface {
	Connected(peer string)
	Disconnected(peer string, err error)
	Moved(r Record)
}

// PeerConnected forwards a connection event to the observers.
func (g *Game) PeerConnected(peer string) {
	g.logger.Printf("peer %s connected", peer)
	for _, o := range g.observers {
		o.Connected(peer)
	}
}

func (g *Game) PeerDisconnected(peer string, err error) {
	if err != nil {
		g.logger.Printf("peer %s disconnected: %v", peer, err)
	} else {
		g.logger.Printf("peer %s disconnected", peer)
	}
	for _, o := range g.observers {
		o.Disconnected(peer, err)
	}
}
