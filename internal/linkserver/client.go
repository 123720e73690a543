/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package linkserver

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
)

// Send asks the server at addr (host:port) to request the link named name
// and returns its answer. A Response with OK false is returned as an error.
func Send(ctx context.Context, addr, name string) (Response, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: Path}
	c, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return Response{}, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	defer func() { _ = c.Close() }()

	if dl, ok := ctx.Deadline(); ok {
		_ = c.SetReadDeadline(dl)
		_ = c.SetWriteDeadline(dl)
	}
	if err := c.WriteJSON(Request{Link: name}); err != nil {
		return Response{}, fmt.Errorf("send link: %w", err)
	}
	var resp Response
	if err := c.ReadJSON(&resp); err != nil {
		return Response{}, fmt.Errorf("read reply: %w", err)
	}
	_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if !resp.OK {
		return resp, errors.New(resp.Error)
	}
	return resp, nil
}
