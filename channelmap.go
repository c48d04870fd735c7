/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import "github.com/btnmasher/ircrelay/shared/concurrentmap"

// ChannelMap is the server's channel directory, keyed by the channel's
// ASCII-lowercased name (§4.3: "lookup and creation normalize
// consistently"), built on the shared generic concurrent map.
type ChannelMap struct {
	m concurrentmap.ConcurrentMap[string, *Channel]
}

// NewChannelMap initializes a new channel directory.
func NewChannelMap() *ChannelMap {
	return &ChannelMap{m: concurrentmap.New[string, *Channel]()}
}

func (cm *ChannelMap) Add(lowerName string, c *Channel) { cm.m.Set(lowerName, c) }
func (cm *ChannelMap) Del(lowerName string)             { cm.m.Delete(lowerName) }
func (cm *ChannelMap) Get(lowerName string) (*Channel, bool) {
	return cm.m.Get(lowerName)
}
func (cm *ChannelMap) Exists(lowerName string) bool { return cm.m.Exists(lowerName) }
func (cm *ChannelMap) Length() int                  { return cm.m.Length() }
func (cm *ChannelMap) ForEach(do func(*Channel)) {
	_ = cm.m.ForEach(func(_ string, c *Channel) error {
		do(c)
		return nil
	})
}
