package models

import "sync"

// DocumentStore keeps one RemoteDocument per user identity.
type DocumentStore struct {
	mu   sync.RWMutex
	data map[string]*RemoteDocument
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{data: make(map[string]*RemoteDocument)}
}

func (s *DocumentStore) Get(uid string) (*RemoteDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.data[uid]
	if !ok {
		return nil, false
	}
	return doc.Clone(), true
}

// Set replaces the whole document for uid.
func (s *DocumentStore) Set(uid string, doc *RemoteDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uid == "" || doc == nil {
		return
	}
	s.data[uid] = doc.Clone()
}

func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *DocumentStore) WidgetCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, doc := range s.data {
		n += len(doc.Timers)
	}
	return n
}

func (s *DocumentStore) PutData(data map[string]*RemoteDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*RemoteDocument, len(data))
	for uid, doc := range data {
		if uid == "" || doc == nil {
			continue
		}
		s.data[uid] = doc.Clone()
	}
}

func (s *DocumentStore) GetData() map[string]*RemoteDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]*RemoteDocument, len(s.data))
	for uid, doc := range s.data {
		result[uid] = doc.Clone()
	}
	return result
}
