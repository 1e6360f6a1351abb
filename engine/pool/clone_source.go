package pool

// CloneSource is the non-pooled way to source tokens: every acquisition
// clones the template, every release destroys the clone. Meant for cast
// families too rare to justify keeping a pool warm.
type CloneSource struct {
	provider  Provider
	template  Token
	container Container
}

func NewCloneSource(provider Provider, template Token, container Container) *CloneSource {
	return &CloneSource{provider: provider, template: template, container: container}
}

func (s *CloneSource) Acquire() Token {
	token := s.provider.Clone(s.template)
	s.provider.SetContainer(token, s.container)
	return token
}

func (s *CloneSource) Release(token Token) {
	if token == nil {
		return
	}
	s.provider.Destroy(token)
}
