/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import "github.com/btnmasher/ircrelay/shared/concurrentmap"

// ClientMap is the server's client directory, wrapped around the shared
// generic concurrent map, keyed by connection handle.
type ClientMap struct {
	m concurrentmap.ConcurrentMap[uint64, *Client]
}

// NewClientMap initializes a new client directory.
func NewClientMap() *ClientMap {
	return &ClientMap{m: concurrentmap.New[uint64, *Client]()}
}

func (cm *ClientMap) Add(handle uint64, c *Client)    { cm.m.Set(handle, c) }
func (cm *ClientMap) Del(handle uint64)               { cm.m.Delete(handle) }
func (cm *ClientMap) Get(handle uint64) (*Client, bool) { return cm.m.Get(handle) }
func (cm *ClientMap) Length() int                     { return cm.m.Length() }
func (cm *ClientMap) ForEach(do func(*Client)) {
	_ = cm.m.ForEach(func(_ uint64, c *Client) error {
		do(c)
		return nil
	})
}

// NickMap is the server's case-insensitive nickname directory: lowercased
// nick -> Client, indexed independently from the primary client directory.
type NickMap struct {
	m concurrentmap.ConcurrentMap[string, *Client]
}

// NewNickMap initializes a new nickname directory.
func NewNickMap() *NickMap {
	return &NickMap{m: concurrentmap.New[string, *Client]()}
}

func (nm *NickMap) Add(lowerNick string, c *Client) { nm.m.Set(lowerNick, c) }
func (nm *NickMap) Del(lowerNick string)            { nm.m.Delete(lowerNick) }
func (nm *NickMap) Get(lowerNick string) (*Client, bool) {
	return nm.m.Get(lowerNick)
}
func (nm *NickMap) Exists(lowerNick string) bool { return nm.m.Exists(lowerNick) }
func (nm *NickMap) Rename(oldLower, newLower string) {
	nm.m.ChangeKey(oldLower, newLower)
}
func (nm *NickMap) Length() int { return nm.m.Length() }
